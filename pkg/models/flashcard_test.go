package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/gridcards/pkg/models"
)

var _ = Describe("Flashcard Models", func() {
	Context("Rect", func() {
		It("should report its width and height", func() {
			r := models.Rect{X0: 10, Y0: 20, X1: 110, Y1: 70}

			Expect(r.Width()).To(Equal(100.0))
			Expect(r.Height()).To(Equal(50.0))
		})
	})

	Context("Card", func() {
		It("should read the front from the question page", func() {
			card := models.Card{Number: 3, QuestionPage: 4, AnswerPage: 5, Column: 0, Row: 1}

			Expect(card.Front()).To(Equal(models.Cell{Page: 4, Column: 0, Row: 1}))
		})

		It("should read the back from the mirrored column of the answer page", func() {
			left := models.Card{Number: 1, QuestionPage: 0, AnswerPage: 1, Column: 0, Row: 2}
			right := models.Card{Number: 2, QuestionPage: 0, AnswerPage: 1, Column: 1, Row: 2}

			Expect(left.Back()).To(Equal(models.Cell{Page: 1, Column: 1, Row: 2}))
			Expect(right.Back()).To(Equal(models.Cell{Page: 1, Column: 0, Row: 2}))
		})
	})
})
