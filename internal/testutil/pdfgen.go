// Package testutil writes small PDFs for tests. Every grid cell is filled
// with a solid colour so rendered crops can be checked by sampling pixels.
package testutil

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"strings"
)

type Page struct {
	// X and Y place the lower-left corner of the media box. Content is
	// drawn relative to that corner.
	X, Y    float64
	Width   float64
	Height  float64
	Content string
}

// CellColor is the fill used for a grid cell on a given page.
func CellColor(page, column, row int) color.RGBA {
	return color.RGBA{
		R: uint8(40 + 160*column),
		G: uint8(60 * row),
		B: uint8(255 * (page % 2)),
		A: 255,
	}
}

// GridPage draws the 2x4 grid of CellColor fills on a page.
func GridPage(index int, width, height float64) Page {
	var sb strings.Builder
	w, h := width/2, height/4
	for row := 0; row < 4; row++ {
		for col := 0; col < 2; col++ {
			c := CellColor(index, col, row)
			// PDF space is bottom-up; row 0 is the top band.
			y := height - float64(row+1)*h
			fmt.Fprintf(&sb, "%.4f %.4f %.4f rg %.4f %.4f %.4f %.4f re f\n",
				float64(c.R)/255, float64(c.G)/255, float64(c.B)/255,
				float64(col)*w, y, w, h)
		}
	}
	return Page{Width: width, Height: height, Content: sb.String()}
}

// GridPageAt is GridPage with the media box moved to (x, y).
func GridPageAt(index int, x, y, width, height float64) Page {
	p := GridPage(index, width, height)
	p.X, p.Y = x, y
	return p
}

// GridPDF returns a document of pageCount grid pages of the same size.
func GridPDF(pageCount int, width, height float64) []byte {
	pages := make([]Page, pageCount)
	for i := range pages {
		pages[i] = GridPage(i, width, height)
	}
	return Build(pages...)
}

func WriteGridPDF(path string, pageCount int, width, height float64) error {
	return os.WriteFile(path, GridPDF(pageCount, width, height), 0644)
}

// Build serializes pages into a PDF 1.4 file with a valid xref table.
func Build(pages ...Page) []byte {
	var buf bytes.Buffer
	var offsets []int

	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))

	for i, p := range pages {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [%.4f %.4f %.4f %.4f] /Resources << >> /Contents %d 0 R >>",
			p.X, p.Y, p.X+p.Width, p.Y+p.Height, 4+2*i))
		content := p.Content
		if p.X != 0 || p.Y != 0 {
			content = fmt.Sprintf("q 1 0 0 1 %.4f %.4f cm\n%sQ\n", p.X, p.Y, content)
		}
		obj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	return buf.Bytes()
}
