package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/kpauljoseph/gridcards/pkg/models"
)

// CellPDF cuts a region out of a page and returns it as a standalone
// single-page PDF whose visible area is exactly that region.
func (d *Document) CellPDF(page int, r models.Rect) ([]byte, error) {
	visible, err := d.pageBox(page)
	if err != nil {
		return nil, err
	}

	d.logger.Trace("Cropping page %d to [%.2f %.2f %.2f %.2f]", page, r.X0, r.Y0, r.X1, r.Y1)

	var single bytes.Buffer
	if err := api.Trim(bytes.NewReader(d.raw), &single, []string{strconv.Itoa(page + 1)}, d.conf); err != nil {
		return nil, errors.Wrapf(err, "failed to extract page %d", page)
	}

	box, err := model.ParseBox(cropBox(visible, r), types.POINTS)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build crop box for page %d", page)
	}

	var out bytes.Buffer
	if err := api.Crop(bytes.NewReader(single.Bytes()), &out, nil, box, d.conf); err != nil {
		return nil, errors.Wrapf(err, "failed to crop page %d", page)
	}

	return out.Bytes(), nil
}

// cropBox converts a rectangle measured from the top-left corner of the
// visible page area into a PDF box string in user space.
func cropBox(visible types.Rectangle, r models.Rect) string {
	left, top := visible.LL.X, visible.UR.Y
	return fmt.Sprintf("[%.4f %.4f %.4f %.4f]", left+r.X0, top-r.Y1, left+r.X1, top-r.Y0)
}

// Merge concatenates PDF documents in the given order and writes the result.
func Merge(w io.Writer, docs ...[]byte) error {
	if len(docs) == 0 {
		return errors.New("nothing to merge")
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, doc := range docs {
		readers[i] = bytes.NewReader(doc)
	}

	if err := api.MergeRaw(readers, w, false, newConfiguration()); err != nil {
		return errors.Wrap(err, "failed to merge PDFs")
	}
	return nil
}

// Merger adapts Merge to an interface value.
type Merger struct{}

func (Merger) Merge(w io.Writer, docs ...[]byte) error {
	return Merge(w, docs...)
}

// PageCount counts the pages of an in-memory PDF.
func PageCount(doc []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(doc), newConfiguration())
	if err != nil {
		return 0, errors.Wrap(err, "failed to count pages")
	}
	return n, nil
}
