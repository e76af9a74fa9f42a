package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"

	"github.com/kpauljoseph/gridcards/pkg/logger"
	"github.com/kpauljoseph/gridcards/pkg/models"
)

const (
	PointsPerInch = 72.0
	DefaultDPI    = 300.0
)

var ErrSourceNotFound = errors.New("PDF file not found")

func init() {
	// Keep pdfcpu from creating a config directory in the user's home.
	model.ConfigPath = "disable"
}

// Document is an open source PDF. It is read-only once opened, so every
// render call works from the same bytes.
type Document struct {
	path   string
	raw    []byte
	// boxes holds the visible area of each page in PDF user space.
	boxes  []types.Rectangle
	raster *fitz.Document
	conf   *model.Configuration
	logger *logger.Logger
}

func Open(path string, log *logger.Logger) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, errors.WithStack(err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceNotFound, path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read PDF")
	}

	doc, err := openBytes(raw, log)
	if err != nil {
		return nil, err
	}
	doc.path = path
	return doc, nil
}

// OpenBytes opens a document held in memory.
func OpenBytes(raw []byte, log *logger.Logger) (*Document, error) {
	return openBytes(raw, log)
}

func openBytes(raw []byte, log *logger.Logger) (*Document, error) {
	conf := newConfiguration()

	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(raw), conf)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read PDF")
	}

	boxes, err := pageBoxes(ctx)
	if err != nil {
		return nil, err
	}

	raster, err := fitz.NewFromMemory(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF")
	}

	if raster.NumPage() != len(boxes) {
		raster.Close()
		return nil, errors.Errorf("page count mismatch: renderer sees %d pages, parser sees %d", raster.NumPage(), len(boxes))
	}

	log.Debug("Opened PDF with %d pages", len(boxes))

	return &Document{
		raw:    raw,
		boxes:  boxes,
		raster: raster,
		conf:   conf,
		logger: log,
	}, nil
}

// pageBoxes returns the crop box of every page, falling back to the media
// box. This is the area renderers draw, and its lower-left corner need not
// be the origin.
func pageBoxes(ctx *model.Context) ([]types.Rectangle, error) {
	bounds, err := ctx.PageBoundaries(nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read page boundaries")
	}

	boxes := make([]types.Rectangle, len(bounds))
	for i, pb := range bounds {
		boxes[i] = *pb.CropBox()
	}
	return boxes, nil
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func (d *Document) Path() string {
	return d.path
}

func (d *Document) NumPage() int {
	return len(d.boxes)
}

// PageSize returns the size of a zero-indexed page in points.
func (d *Document) PageSize(page int) (models.PageDimensions, error) {
	box, err := d.pageBox(page)
	if err != nil {
		return models.PageDimensions{}, err
	}
	return models.PageDimensions{Width: box.Width(), Height: box.Height()}, nil
}

func (d *Document) pageBox(page int) (types.Rectangle, error) {
	if page < 0 || page >= len(d.boxes) {
		return types.Rectangle{}, errors.Errorf("page %d out of range [0, %d)", page, len(d.boxes))
	}
	return d.boxes[page], nil
}

func (d *Document) Close() error {
	return d.raster.Close()
}
