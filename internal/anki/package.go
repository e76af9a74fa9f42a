package anki

import (
	"archive/zip"
	"crypto/sha1"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	collectionFile = "collection.anki2"
	mediaIndexFile = "media"
	schemaVersion  = 11
	defaultDeckID  = 1
)

// Package collects one deck of notes and their media and writes them as an
// .apkg archive.
type Package struct {
	Deck       Deck
	NoteType   NoteType
	Notes      []Note
	MediaFiles []string

	// Now stamps note and card IDs. Defaults to time.Now.
	Now func() time.Time
	// WorkDir is where the collection database is built before it is
	// zipped. Empty means the system temp directory.
	WorkDir string
}

func NewPackage(deck Deck, noteType NoteType) *Package {
	return &Package{
		Deck:     deck,
		NoteType: noteType,
		Now:      time.Now,
	}
}

func (p *Package) AddNote(note Note) error {
	if len(note.Fields) != len(p.NoteType.Fields) {
		return fmt.Errorf("note has %d fields, note type %q expects %d",
			len(note.Fields), p.NoteType.Name, len(p.NoteType.Fields))
	}
	p.Notes = append(p.Notes, note)
	return nil
}

// AddMedia registers a file to ship in the package. Notes refer to it by
// its base name.
func (p *Package) AddMedia(path string) {
	p.MediaFiles = append(p.MediaFiles, path)
}

func (p *Package) WriteToFile(path string) error {
	work, err := os.MkdirTemp(p.WorkDir, "gridcards-apkg-*")
	if err != nil {
		return errors.Wrap(err, "failed to create package work directory")
	}
	defer os.RemoveAll(work)

	dbPath := filepath.Join(work, collectionFile)
	if err := p.writeCollection(dbPath); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create package file")
	}

	if err := p.writeArchive(out, dbPath); err != nil {
		out.Close()
		os.Remove(path)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		return errors.Wrap(err, "failed to close package file")
	}
	return nil
}

func (p *Package) writeArchive(w io.Writer, dbPath string) error {
	zw := zip.NewWriter(w)

	if err := addFile(zw, collectionFile, dbPath); err != nil {
		return err
	}

	index := make(map[string]string, len(p.MediaFiles))
	seen := make(map[string]bool, len(p.MediaFiles))
	for i, media := range p.MediaFiles {
		name := filepath.Base(media)
		if seen[name] {
			return errors.Errorf("duplicate media file name %q", name)
		}
		seen[name] = true

		key := strconv.Itoa(i)
		if err := addFile(zw, key, media); err != nil {
			return err
		}
		index[key] = name
	}

	data, err := json.Marshal(index)
	if err != nil {
		return errors.Wrap(err, "failed to encode media index")
	}
	entry, err := zw.Create(mediaIndexFile)
	if err != nil {
		return errors.Wrap(err, "failed to add media index")
	}
	if _, err := entry.Write(data); err != nil {
		return errors.Wrap(err, "failed to write media index")
	}

	return errors.Wrap(zw.Close(), "failed to finish package archive")
}

func addFile(zw *zip.Writer, name, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer src.Close()

	dst, err := zw.Create(name)
	if err != nil {
		return errors.Wrapf(err, "failed to add %s to package", name)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return errors.Wrapf(err, "failed to copy %s into package", path)
	}
	return nil
}

func (p *Package) writeCollection(dbPath string) (err error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return errors.Wrap(err, "failed to open collection database")
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "failed to close collection database")
		}
	}()

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin collection transaction")
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return errors.Wrap(err, "failed to create collection schema")
		}
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	ts := now()
	modMs := ts.UnixMilli()

	models, err := p.modelsJSON(ts.Unix())
	if err != nil {
		return err
	}
	decks, err := p.decksJSON(ts.Unix())
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT INTO col VALUES (1, ?, ?, ?, ?, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		ts.Unix(), modMs, modMs, schemaVersion, collectionConf, models, decks, deckConf)
	if err != nil {
		return errors.Wrap(err, "failed to write collection row")
	}

	for i, note := range p.Notes {
		id := modMs + int64(i)
		sfld := sortField(note.Fields[0])

		_, err := tx.Exec(`INSERT INTO notes VALUES (?, ?, ?, ?, -1, ?, ?, ?, ?, 0, '')`,
			id, note.GUID(p.Deck.ID), p.NoteType.ID, ts.Unix(), noteTags(note.Tags),
			strings.Join(note.Fields, fieldSeparator), sfld, checksum(sfld))
		if err != nil {
			return errors.Wrapf(err, "failed to write note %d", i+1)
		}

		// New card: type 0, queue 0, due is the position in the new queue.
		_, err = tx.Exec(`INSERT INTO cards VALUES (?, ?, ?, 0, ?, -1, 0, 0, ?, 0, 0, 0, 0, 0, 0, 0, 0, '')`,
			id, id, p.Deck.ID, ts.Unix(), i+1)
		if err != nil {
			return errors.Wrapf(err, "failed to write card %d", i+1)
		}
	}

	return errors.Wrap(tx.Commit(), "failed to commit collection")
}

func noteTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

// checksum is the first 32 bits of the SHA-1 of the sort field.
func checksum(sfld string) int64 {
	sum := sha1.Sum([]byte(sfld))
	v, _ := strconv.ParseInt(hex.EncodeToString(sum[:4]), 16, 64)
	return v
}

type jsonField struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

type jsonTemplate struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	QFmt  string `json:"qfmt"`
	AFmt  string `json:"afmt"`
	BQFmt string `json:"bqfmt"`
	BAFmt string `json:"bafmt"`
	Did   *int64 `json:"did"`
}

type jsonModel struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Type      int            `json:"type"`
	Mod       int64          `json:"mod"`
	USN       int            `json:"usn"`
	SortF     int            `json:"sortf"`
	Did       int64          `json:"did"`
	Tmpls     []jsonTemplate `json:"tmpls"`
	Flds      []jsonField    `json:"flds"`
	CSS       string         `json:"css"`
	LatexPre  string         `json:"latexPre"`
	LatexPost string         `json:"latexPost"`
	Tags      []string       `json:"tags"`
	Vers      []int          `json:"vers"`
	Req       [][]any        `json:"req"`
}

type jsonDeck struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Desc      string `json:"desc"`
	Mod       int64  `json:"mod"`
	USN       int    `json:"usn"`
	Collapsed bool   `json:"collapsed"`
	NewToday  [2]int `json:"newToday"`
	RevToday  [2]int `json:"revToday"`
	LrnToday  [2]int `json:"lrnToday"`
	TimeToday [2]int `json:"timeToday"`
	Dyn       int    `json:"dyn"`
	Conf      int    `json:"conf"`
	ExtendNew int    `json:"extendNew"`
	ExtendRev int    `json:"extendRev"`
}

const (
	latexPre = "\\documentclass[12pt]{article}\n\\special{papersize=3in,5in}\n" +
		"\\usepackage[utf8]{inputenc}\n\\usepackage{amssymb,amsmath}\n\\pagestyle{empty}\n" +
		"\\setlength{\\parindent}{0in}\n\\begin{document}\n"
	latexPost = "\\end{document}"
)

func (p *Package) modelsJSON(mod int64) (string, error) {
	nt := p.NoteType

	fields := make([]jsonField, len(nt.Fields))
	for i, name := range nt.Fields {
		fields[i] = jsonField{Name: name, Ord: i, Font: "Arial", Size: 20, Media: []string{}}
	}

	tmpls := make([]jsonTemplate, len(nt.Templates))
	req := make([][]any, len(nt.Templates))
	for i, t := range nt.Templates {
		tmpls[i] = jsonTemplate{Name: t.Name, Ord: i, QFmt: t.Front, AFmt: t.Back}
		// A card is generated when the first field is non-empty.
		req[i] = []any{i, "all", []int{0}}
	}

	models := map[string]jsonModel{
		strconv.FormatInt(nt.ID, 10): {
			ID:        nt.ID,
			Name:      nt.Name,
			Mod:       mod,
			USN:       -1,
			Did:       p.Deck.ID,
			Tmpls:     tmpls,
			Flds:      fields,
			CSS:       nt.CSS,
			LatexPre:  latexPre,
			LatexPost: latexPost,
			Tags:      []string{},
			Vers:      []int{},
			Req:       req,
		},
	}

	data, err := json.Marshal(models)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode note types")
	}
	return string(data), nil
}

func (p *Package) decksJSON(mod int64) (string, error) {
	deck := func(id int64, name, desc string) jsonDeck {
		return jsonDeck{
			ID:        id,
			Name:      name,
			Desc:      desc,
			Mod:       mod,
			USN:       -1,
			Conf:      1,
			ExtendNew: 10,
			ExtendRev: 50,
		}
	}

	decks := map[string]jsonDeck{
		strconv.Itoa(defaultDeckID):      deck(defaultDeckID, "Default", ""),
		strconv.FormatInt(p.Deck.ID, 10): deck(p.Deck.ID, p.Deck.Name, p.Deck.Description),
	}

	data, err := json.Marshal(decks)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode decks")
	}
	return string(data), nil
}
