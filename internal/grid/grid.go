// Package grid maps paired pages of a 2x4 print layout onto flashcards.
//
// Pages are consumed two at a time: the even page carries questions, the
// following odd page carries answers. Sheets are printed double sided, so
// the answer for column c sits in column 1-c of the answer page.
package grid

import (
	"iter"

	"github.com/kpauljoseph/gridcards/pkg/models"
)

const (
	Columns      = 2
	Rows         = 4
	CellsPerPage = Columns * Rows
)

// CellRect returns the rectangle of the cell at (column, row) on a page of
// the given size. Coordinates outside the grid are not checked.
func CellRect(page models.PageDimensions, column, row int) models.Rect {
	w, h := page.Width/Columns, page.Height/Rows
	return models.Rect{
		X0: float64(column) * w,
		Y0: float64(row) * h,
		X1: float64(column+1) * w,
		Y1: float64(row+1) * h,
	}
}

// PairCount is the number of complete question/answer page pairs. A
// trailing unpaired page is not counted.
func PairCount(pageCount int) int {
	if pageCount < 0 {
		return 0
	}
	return pageCount / 2
}

func CardCount(pageCount int) int {
	return PairCount(pageCount) * CellsPerPage
}

// HasOrphanPage reports whether the last page has no partner and will be
// left out of the card sequence.
func HasOrphanPage(pageCount int) bool {
	return pageCount > 0 && pageCount%2 != 0
}

// Cards yields every card for a document with pageCount pages, page pair by
// page pair, row by row, left column first. Numbers start at 1 and run on
// across pairs. The sequence can be ranged over any number of times.
func Cards(pageCount int) iter.Seq[models.Card] {
	pairs := PairCount(pageCount)
	return func(yield func(models.Card) bool) {
		number := 1
		for pair := 0; pair < pairs; pair++ {
			for row := 0; row < Rows; row++ {
				for col := 0; col < Columns; col++ {
					card := models.Card{
						Number:       number,
						QuestionPage: pair * 2,
						AnswerPage:   pair*2 + 1,
						Column:       col,
						Row:          row,
					}
					if !yield(card) {
						return
					}
					number++
				}
			}
		}
	}
}
