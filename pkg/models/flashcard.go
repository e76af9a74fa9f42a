package models

type PageDimensions struct {
	Width  float64
	Height float64
}

// Rect is a region of a page in PDF points with a top-left origin.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Cell addresses one grid cell on one page of the source document.
type Cell struct {
	Page   int
	Column int
	Row    int
}

// Card is one flashcard. The answer is read from the mirrored column of
// the answer page, on the same row as the question.
type Card struct {
	Number       int
	QuestionPage int
	AnswerPage   int
	Column       int
	Row          int
}

func (c Card) AnswerColumn() int {
	return 1 - c.Column
}

func (c Card) Front() Cell {
	return Cell{Page: c.QuestionPage, Column: c.Column, Row: c.Row}
}

func (c Card) Back() Cell {
	return Cell{Page: c.AnswerPage, Column: c.AnswerColumn(), Row: c.Row}
}
