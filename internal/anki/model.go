package anki

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	ImageNoteTypeName = "Image Flashcard"
	DefaultDeckName   = "Imported Flashcards"
	AppTag            = "gridcards"

	fieldSeparator = "\x1f"
)

type Template struct {
	Name  string
	Front string
	Back  string
}

type NoteType struct {
	ID        int64
	Name      string
	Fields    []string
	Templates []Template
	CSS       string
}

type Deck struct {
	ID          int64
	Name        string
	Description string
}

type Note struct {
	Fields []string
	Tags   []string
}

// ImageNoteType is a question/answer note type showing one image per side.
// The back repeats the front above an answer divider.
func ImageNoteType(id int64) NoteType {
	return NoteType{
		ID:     id,
		Name:   ImageNoteTypeName,
		Fields: []string{"Q", "A"},
		Templates: []Template{
			{
				Name:  "Card",
				Front: `<div style="text-align:center">{{Q}}</div>`,
				Back:  `{{FrontSide}}<hr id="answer"><div style="text-align:center">{{A}}</div>`,
			},
		},
		CSS: ".card{text-align:center;background:#fff}img{max-width:100%;height:auto}",
	}
}

func ImageField(filename string) string {
	return fmt.Sprintf(`<img src="%s">`, filename)
}

// GUID is stable for the same fields in the same deck.
func (n Note) GUID(deckID int64) string {
	name := fmt.Sprintf("%d%s%s", deckID, fieldSeparator, strings.Join(n.Fields, fieldSeparator))
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

var (
	imgTag  = regexp.MustCompile(`(?i)<img[^>]*src=["']?([^"'>\s]+)["']?[^>]*>`)
	htmlTag = regexp.MustCompile(`<[^>]*>`)
)

// sortField is the field text Anki sorts and checksums by: HTML removed,
// image filenames kept.
func sortField(field string) string {
	s := imgTag.ReplaceAllString(field, " $1 ")
	s = htmlTag.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// DeckTag turns a deck name into a single tag.
func DeckTag(deckName string) string {
	return strings.ReplaceAll(strings.TrimSpace(deckName), " ", "_")
}
