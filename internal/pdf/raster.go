package pdf

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"math"

	"github.com/pkg/errors"

	"github.com/kpauljoseph/gridcards/pkg/models"
)

// CellImage rasterizes a page at dpi and returns the region r as PNG bytes.
func (d *Document) CellImage(page int, r models.Rect, dpi float64) ([]byte, error) {
	size, err := d.PageSize(page)
	if err != nil {
		return nil, err
	}

	d.logger.Trace("Rasterizing page %d at %.0f DPI", page, dpi)

	img, err := d.raster.ImageDPI(page, dpi)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to render page %d", page)
	}

	cell, err := cropImage(img, pixelRect(img.Bounds(), size, r))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to crop page %d", page)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, cell); err != nil {
		return nil, errors.Wrapf(err, "failed to encode cell image for page %d", page)
	}
	return buf.Bytes(), nil
}

// pixelRect maps a rectangle in points onto the pixel grid of a page
// rendering. The scale comes from the rendering itself so rounding in the
// renderer does not shift cell edges.
func pixelRect(bounds image.Rectangle, page models.PageDimensions, r models.Rect) image.Rectangle {
	sx := float64(bounds.Dx()) / page.Width
	sy := float64(bounds.Dy()) / page.Height

	px := image.Rect(
		bounds.Min.X+int(math.Round(r.X0*sx)),
		bounds.Min.Y+int(math.Round(r.Y0*sy)),
		bounds.Min.X+int(math.Round(r.X1*sx)),
		bounds.Min.Y+int(math.Round(r.Y1*sy)),
	)
	return px.Intersect(bounds)
}

func cropImage(src image.Image, area image.Rectangle) (*image.RGBA, error) {
	if area.Empty() {
		return nil, errors.New("crop area is empty")
	}

	dst := image.NewRGBA(image.Rect(0, 0, area.Dx(), area.Dy()))
	draw.Draw(dst, dst.Bounds(), src, area.Min, draw.Src)
	return dst, nil
}
