package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/kpauljoseph/gridcards/internal/anki"
	"github.com/kpauljoseph/gridcards/pkg/logger"
)

// PackageExporter rasterizes every card and writes a single .apkg deck.
// Images are staged in a scratch directory that is removed when Export
// returns, whatever the outcome.
type PackageExporter struct {
	deckName string
	dpi      float64
	ids      anki.IDSource
	tempDir  string
	now      func() time.Time
	logger   *logger.Logger
}

func NewPackageExporter(opts Options) *PackageExporter {
	opts = opts.withDefaults()
	return &PackageExporter{
		deckName: opts.DeckName,
		dpi:      opts.DPI,
		ids:      opts.IDs,
		tempDir:  opts.TempDir,
		now:      opts.Now,
		logger:   opts.Logger,
	}
}

func (e *PackageExporter) Export(ctx context.Context, src Renderer, output string) error {
	if err := ensureDir(filepath.Dir(output)); err != nil {
		return err
	}

	scratch, err := os.MkdirTemp(e.tempDir, "gridcards-media-*")
	if err != nil {
		return errors.Wrap(err, "failed to create scratch directory")
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			e.logger.Warn("Failed to remove scratch directory %s: %v", scratch, err)
		}
	}()
	e.logger.Debug("Staging media in %s", scratch)

	deck := anki.Deck{ID: e.ids.DeckID(e.deckName), Name: e.deckName}
	pkg := anki.NewPackage(deck, anki.ImageNoteType(e.ids.NoteTypeID(anki.ImageNoteTypeName)))
	pkg.Now = e.now
	pkg.WorkDir = scratch
	tags := []string{anki.AppTag, anki.DeckTag(e.deckName)}

	for card := range cards(src, e.logger) {
		if err := ctx.Err(); err != nil {
			return err
		}

		question := fmt.Sprintf("card_%03d_q.png", card.Number)
		img, err := renderImage(src, card.Front(), e.dpi)
		if err != nil {
			return errors.Wrapf(err, "card %03d: failed to render question", card.Number)
		}
		if err := writeFile(filepath.Join(scratch, question), img); err != nil {
			return err
		}
		pkg.AddMedia(filepath.Join(scratch, question))

		answer := fmt.Sprintf("card_%03d_a.png", card.Number)
		img, err = renderImage(src, card.Back(), e.dpi)
		if err != nil {
			return errors.Wrapf(err, "card %03d: failed to render answer", card.Number)
		}
		if err := writeFile(filepath.Join(scratch, answer), img); err != nil {
			return err
		}
		pkg.AddMedia(filepath.Join(scratch, answer))

		if err := pkg.AddNote(anki.Note{
			Fields: []string{anki.ImageField(question), anki.ImageField(answer)},
			Tags:   tags,
		}); err != nil {
			return errors.WithStack(err)
		}

		e.logger.Info("Card %03d", card.Number)
	}

	e.logger.Debug("Writing %d notes and %d media files", len(pkg.Notes), len(pkg.MediaFiles))
	return pkg.WriteToFile(output)
}
