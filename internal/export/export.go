// Package export turns the cards of a grid layout PDF into flashcard files.
//
// Every exporter walks the same card sequence and renders two cells per
// card: the question cell and the mirrored answer cell. Cards are written
// one at a time and the first error ends the run. Files written for
// earlier cards are left in place.
package export

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/kpauljoseph/gridcards/internal/anki"
	"github.com/kpauljoseph/gridcards/internal/grid"
	"github.com/kpauljoseph/gridcards/internal/pdf"
	"github.com/kpauljoseph/gridcards/pkg/logger"
	"github.com/kpauljoseph/gridcards/pkg/models"
	"github.com/kpauljoseph/gridcards/pkg/utils"
)

// Renderer reads cells out of an open source document.
type Renderer interface {
	NumPage() int
	PageSize(page int) (models.PageDimensions, error)
	// CellPDF returns the region as a standalone single-page PDF.
	CellPDF(page int, r models.Rect) ([]byte, error)
	// CellImage returns the region rasterized to PNG at dpi.
	CellImage(page int, r models.Rect, dpi float64) ([]byte, error)
}

// Merger concatenates PDFs in order.
type Merger interface {
	Merge(w io.Writer, docs ...[]byte) error
}

type Exporter interface {
	Export(ctx context.Context, src Renderer, output string) error
}

type Mode string

const (
	ModeSeparate Mode = "pdf"
	ModeMerged   Mode = "pdf-merged"
	ModePackage  Mode = "anki"

	PackageExt = ".apkg"
)

var ErrUnknownMode = errors.New("unknown export mode")

func Modes() []Mode {
	return []Mode{ModeSeparate, ModeMerged, ModePackage}
}

func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// DefaultOutput is the output path used when none is given: the source
// file's stem, with the package extension in package mode.
func (m Mode) DefaultOutput(source string) string {
	if m == ModePackage {
		return utils.DefaultOutputPath(source, PackageExt)
	}
	return utils.DefaultOutputPath(source, "")
}

type Options struct {
	Logger   *logger.Logger
	DeckName string
	DPI      float64
	IDs      anki.IDSource
	// TempDir is the parent of the package media scratch directory.
	TempDir string
	Merger  Merger
	Now     func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
	if o.DeckName == "" {
		o.DeckName = anki.DefaultDeckName
	}
	if o.DPI == 0 {
		o.DPI = pdf.DefaultDPI
	}
	if o.IDs == nil {
		o.IDs = anki.NewRandomIDs()
	}
	if o.Merger == nil {
		o.Merger = pdf.Merger{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

func New(mode Mode, opts Options) (Exporter, error) {
	opts = opts.withDefaults()
	switch mode {
	case ModeSeparate:
		return NewSeparateExporter(opts.Logger), nil
	case ModeMerged:
		return NewMergedExporter(opts.Merger, opts.Logger), nil
	case ModePackage:
		return NewPackageExporter(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// cards returns the card sequence for src, warning once if the last page
// has no partner.
func cards(src Renderer, log *logger.Logger) iter.Seq[models.Card] {
	n := src.NumPage()
	if grid.HasOrphanPage(n) {
		log.Warn("PDF has %d pages. Last page ignored.", n)
	}
	log.Debug("Exporting %d cards from %d page pairs", grid.CardCount(n), grid.PairCount(n))
	return grid.Cards(n)
}

func cellRect(src Renderer, cell models.Cell) (models.Rect, error) {
	size, err := src.PageSize(cell.Page)
	if err != nil {
		return models.Rect{}, err
	}
	return grid.CellRect(size, cell.Column, cell.Row), nil
}

func renderPDF(src Renderer, cell models.Cell) ([]byte, error) {
	r, err := cellRect(src, cell)
	if err != nil {
		return nil, err
	}
	return src.CellPDF(cell.Page, r)
}

func renderImage(src Renderer, cell models.Cell, dpi float64) ([]byte, error) {
	r, err := cellRect(src, cell)
	if err != nil {
		return nil, err
	}
	return src.CellImage(cell.Page, r, dpi)
}

func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	return nil
}

func cardName(number int, suffix string) string {
	return fmt.Sprintf("%03d-%s.pdf", number, suffix)
}
