package anki_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/gridcards/internal/anki"
)

var _ = Describe("Note model", func() {
	It("should build the image note type", func() {
		nt := anki.ImageNoteType(42)

		Expect(nt.ID).To(Equal(int64(42)))
		Expect(nt.Name).To(Equal("Image Flashcard"))
		Expect(nt.Fields).To(Equal([]string{"Q", "A"}))
		Expect(nt.Templates).To(HaveLen(1))
		Expect(nt.Templates[0].Front).To(ContainSubstring("{{Q}}"))
		Expect(nt.Templates[0].Back).To(HavePrefix(`{{FrontSide}}<hr id="answer">`))
		Expect(nt.Templates[0].Back).To(ContainSubstring("{{A}}"))
		Expect(nt.CSS).To(ContainSubstring("img{max-width:100%;height:auto}"))
	})

	It("should reference media by file name", func() {
		Expect(anki.ImageField("card_001_q.png")).To(Equal(`<img src="card_001_q.png">`))
	})

	It("should give equal notes in the same deck the same GUID", func() {
		note := anki.Note{Fields: []string{"q", "a"}}
		Expect(note.GUID(1)).To(Equal(note.GUID(1)))
		Expect(note.GUID(1)).NotTo(Equal(note.GUID(2)))
		Expect(note.GUID(1)).NotTo(Equal(anki.Note{Fields: []string{"q", "b"}}.GUID(1)))
	})

	DescribeTable("DeckTag",
		func(deck, expected string) {
			Expect(anki.DeckTag(deck)).To(Equal(expected))
		},
		Entry("spaces", "Imported Flashcards", "Imported_Flashcards"),
		Entry("padding", "  Biology 101 ", "Biology_101"),
		Entry("single word", "Chemistry", "Chemistry"),
	)
})
