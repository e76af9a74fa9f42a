package anki_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/gridcards/internal/anki"
)

var _ = Describe("ID sources", func() {
	Context("RandomIDs", func() {
		It("should stay inside the identifier range", func() {
			ids := anki.NewRandomIDs()
			for i := 0; i < 1000; i++ {
				Expect(ids.DeckID("deck")).To(SatisfyAll(
					BeNumerically(">=", anki.MinID),
					BeNumerically("<", anki.MaxID),
				))
				Expect(ids.NoteTypeID("type")).To(SatisfyAll(
					BeNumerically(">=", anki.MinID),
					BeNumerically("<", anki.MaxID),
				))
			}
		})

		It("should repeat a sequence for the same seed", func() {
			a := anki.NewSeededRandomIDs(1, 2)
			b := anki.NewSeededRandomIDs(1, 2)
			for i := 0; i < 10; i++ {
				Expect(a.DeckID("x")).To(Equal(b.DeckID("x")))
			}
		})

		It("should not derive identifiers from the deck name", func() {
			ids := anki.NewSeededRandomIDs(7, 7)
			Expect(ids.DeckID("same")).NotTo(Equal(ids.DeckID("same")))
		})
	})

	Context("ContentIDs", func() {
		It("should be deterministic for the same seed and name", func() {
			a := anki.ContentIDs{Seed: "abc"}
			b := anki.ContentIDs{Seed: "abc"}
			Expect(a.DeckID("Biology")).To(Equal(b.DeckID("Biology")))
			Expect(a.NoteTypeID(anki.ImageNoteTypeName)).To(Equal(b.NoteTypeID(anki.ImageNoteTypeName)))
		})

		It("should differ across seeds, names and kinds", func() {
			ids := anki.ContentIDs{Seed: "abc"}
			Expect(ids.DeckID("Biology")).NotTo(Equal(anki.ContentIDs{Seed: "abd"}.DeckID("Biology")))
			Expect(ids.DeckID("Biology")).NotTo(Equal(ids.DeckID("Chemistry")))
			Expect(ids.DeckID("Biology")).NotTo(Equal(ids.NoteTypeID("Biology")))
		})

		It("should stay inside the identifier range", func() {
			for _, seed := range []string{"", "a", "b", "c", "0123456789abcdef"} {
				id := anki.ContentIDs{Seed: seed}.DeckID("deck")
				Expect(id).To(BeNumerically(">=", anki.MinID))
				Expect(id).To(BeNumerically("<", anki.MaxID))
			}
		})
	})
})
