package grid_test

import (
	"math"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/gridcards/internal/grid"
	"github.com/kpauljoseph/gridcards/pkg/models"
)

func overlapArea(a, b models.Rect) float64 {
	w := math.Min(a.X1, b.X1) - math.Max(a.X0, b.X0)
	h := math.Min(a.Y1, b.Y1) - math.Max(a.Y0, b.Y0)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

var _ = Describe("Grid addressing", func() {
	Context("Cell rectangles", func() {
		DescribeTable("partitioning a page into eight cells",
			func(width, height float64) {
				page := models.PageDimensions{Width: width, Height: height}

				var cells []models.Rect
				for row := 0; row < grid.Rows; row++ {
					for col := 0; col < grid.Columns; col++ {
						cells = append(cells, grid.CellRect(page, col, row))
					}
				}
				Expect(cells).To(HaveLen(grid.CellsPerPage))

				var area float64
				for i, a := range cells {
					Expect(a.Width()).To(BeNumerically(">", 0))
					Expect(a.Height()).To(BeNumerically(">", 0))
					area += a.Width() * a.Height()
					for _, b := range cells[i+1:] {
						Expect(overlapArea(a, b)).To(BeZero())
					}
				}
				Expect(area).To(BeNumerically("~", width*height, width*height*1e-9))

				By("covering the exact page bounds")
				Expect(grid.CellRect(page, 0, 0).X0).To(BeZero())
				Expect(grid.CellRect(page, 0, 0).Y0).To(BeZero())
				Expect(grid.CellRect(page, 1, 3).X1).To(Equal(width))
				Expect(grid.CellRect(page, 1, 3).Y1).To(Equal(height))

				By("sharing edges between neighbours")
				for row := 0; row < grid.Rows; row++ {
					Expect(grid.CellRect(page, 0, row).X1).To(Equal(grid.CellRect(page, 1, row).X0))
				}
				for row := 0; row < grid.Rows-1; row++ {
					Expect(grid.CellRect(page, 0, row).Y1).To(Equal(grid.CellRect(page, 0, row+1).Y0))
				}
			},
			Entry("US letter", 612.0, 792.0),
			Entry("A4", 595.28, 841.89),
			Entry("Goodnotes flashcard", 455.04, 587.52),
			Entry("tiny page", 0.1, 0.3),
			Entry("landscape", 1000.0, 10.0),
		)

		It("should place the second column on the right half", func() {
			r := grid.CellRect(models.PageDimensions{Width: 200, Height: 400}, 1, 2)
			Expect(r).To(Equal(models.Rect{X0: 100, Y0: 200, X1: 200, Y1: 300}))
		})
	})

	Context("Card enumeration", func() {
		DescribeTable("card counts",
			func(pageCount, expected int) {
				cards := slices.Collect(grid.Cards(pageCount))
				Expect(cards).To(HaveLen(expected))
				Expect(grid.CardCount(pageCount)).To(Equal(expected))

				for i, card := range cards {
					Expect(card.Number).To(Equal(i + 1))
				}
			},
			Entry("no pages", 0, 0),
			Entry("single page", 1, 0),
			Entry("one pair", 2, 8),
			Entry("one pair and an orphan", 3, 8),
			Entry("two pairs", 4, 16),
			Entry("five pairs and an orphan", 11, 40),
			Entry("fifty pairs", 100, 400),
		)

		It("should yield the first pair in row-major, left-first order", func() {
			cards := slices.Collect(grid.Cards(2))
			Expect(cards).To(HaveLen(8))

			for i, card := range cards {
				Expect(card.Number).To(Equal(i + 1))
				Expect(card.QuestionPage).To(Equal(0))
				Expect(card.AnswerPage).To(Equal(1))
				Expect(card.Row).To(Equal(i / 2))
				Expect(card.Column).To(Equal(i % 2))
			}
		})

		It("should never reference the orphan page", func() {
			for _, pageCount := range []int{1, 3, 5, 9, 21} {
				Expect(grid.HasOrphanPage(pageCount)).To(BeTrue())
				for card := range grid.Cards(pageCount) {
					Expect(card.QuestionPage).To(BeNumerically("<", pageCount-1))
					Expect(card.AnswerPage).To(BeNumerically("<", pageCount-1))
				}
			}
			Expect(grid.HasOrphanPage(0)).To(BeFalse())
			Expect(grid.HasOrphanPage(4)).To(BeFalse())
		})

		It("should give a three page document the same cards as a two page one", func() {
			Expect(slices.Collect(grid.Cards(3))).To(Equal(slices.Collect(grid.Cards(2))))
		})

		It("should mirror the answer column on the same row", func() {
			for card := range grid.Cards(12) {
				Expect(card.Column).To(BeElementOf(0, 1))
				Expect(card.Row).To(BeElementOf(0, 1, 2, 3))
				Expect(card.AnswerPage).To(Equal(card.QuestionPage + 1))
				Expect(card.QuestionPage % 2).To(BeZero())

				back := card.Back()
				Expect(back.Column).To(Equal(1 - card.Column))
				Expect(back.Row).To(Equal(card.Row))
				Expect(back.Page).To(Equal(card.AnswerPage))
			}
		})

		It("should carry numbering across page pairs", func() {
			cards := slices.Collect(grid.Cards(6))
			Expect(cards[8]).To(Equal(models.Card{Number: 9, QuestionPage: 2, AnswerPage: 3, Column: 0, Row: 0}))
			Expect(cards[23]).To(Equal(models.Card{Number: 24, QuestionPage: 4, AnswerPage: 5, Column: 1, Row: 3}))
		})

		It("should restart from the beginning on every range", func() {
			seq := grid.Cards(4)
			first := slices.Collect(seq)
			second := slices.Collect(seq)
			Expect(second).To(Equal(first))
		})

		It("should stop when the consumer breaks early", func() {
			var seen []int
			for card := range grid.Cards(4) {
				seen = append(seen, card.Number)
				if card.Number == 3 {
					break
				}
			}
			Expect(seen).To(Equal([]int{1, 2, 3}))
		})
	})
})
