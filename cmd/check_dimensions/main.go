package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kpauljoseph/gridcards/internal/grid"
	"github.com/kpauljoseph/gridcards/pkg/models"
)

func main() {
	pdfPath := flag.String("file", "", "Path to PDF file")
	showCards := flag.Bool("cards", false, "List every card with its question and answer cells")
	flag.Parse()

	if *pdfPath == "" {
		fmt.Println("Please provide a PDF file path using -file flag")
		os.Exit(1)
	}

	fmt.Printf("Analyzing PDF: %s\n", *pdfPath)

	dims, err := api.PageDimsFile(*pdfPath)
	if err != nil {
		fmt.Printf("Error getting page dimensions: %v\n", err)
		os.Exit(1)
	}

	report(os.Stdout, dims, *showCards)
}

func report(w io.Writer, dims []types.Dim, showCards bool) {
	for i, dim := range dims {
		fmt.Fprintf(w, "\nPage %d:\n", i+1)
		fmt.Fprintf(w, "Dimensions (Width x Height): %.3f x %.3f points\n", dim.Width, dim.Height)
		fmt.Fprintf(w, "Cell size: %.3f x %.3f points\n", dim.Width/grid.Columns, dim.Height/grid.Rows)
	}

	fmt.Fprintf(w, "\nPage pairs: %d\n", grid.PairCount(len(dims)))
	fmt.Fprintf(w, "Cards: %d\n", grid.CardCount(len(dims)))
	if grid.HasOrphanPage(len(dims)) {
		fmt.Fprintf(w, "Warning: page %d has no answer page and will be ignored\n", len(dims))
	}

	if !showCards {
		return
	}

	fmt.Fprintln(w)
	for card := range grid.Cards(len(dims)) {
		front, back := card.Front(), card.Back()
		q := grid.CellRect(pageSize(dims[front.Page]), front.Column, front.Row)
		a := grid.CellRect(pageSize(dims[back.Page]), back.Column, back.Row)
		fmt.Fprintf(w, "Card %03d: Q page %d (col %d, row %d) %s | A page %d (col %d, row %d) %s\n",
			card.Number,
			front.Page+1, front.Column, front.Row, formatRect(q),
			back.Page+1, back.Column, back.Row, formatRect(a))
	}
}

func pageSize(dim types.Dim) models.PageDimensions {
	return models.PageDimensions{Width: dim.Width, Height: dim.Height}
}

func formatRect(r models.Rect) string {
	return fmt.Sprintf("[%.1f %.1f %.1f %.1f]", r.X0, r.Y0, r.X1, r.Y1)
}
