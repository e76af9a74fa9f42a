package export

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kpauljoseph/gridcards/pkg/logger"
)

// MergedExporter writes every card as one two-page NNN-Merged.pdf with the
// question on the first page and the answer on the second.
type MergedExporter struct {
	merger Merger
	logger *logger.Logger
}

func NewMergedExporter(merger Merger, log *logger.Logger) *MergedExporter {
	return &MergedExporter{merger: merger, logger: log}
}

func (e *MergedExporter) Export(ctx context.Context, src Renderer, outputDir string) error {
	if err := ensureDir(outputDir); err != nil {
		return err
	}

	var merged bytes.Buffer
	for card := range cards(src, e.logger) {
		if err := ctx.Err(); err != nil {
			return err
		}

		front, err := renderPDF(src, card.Front())
		if err != nil {
			return errors.Wrapf(err, "card %03d: failed to render question", card.Number)
		}
		back, err := renderPDF(src, card.Back())
		if err != nil {
			return errors.Wrapf(err, "card %03d: failed to render answer", card.Number)
		}

		merged.Reset()
		if err := e.merger.Merge(&merged, front, back); err != nil {
			return errors.Wrapf(err, "card %03d: failed to merge", card.Number)
		}

		if err := writeFile(filepath.Join(outputDir, cardName(card.Number, "Merged")), merged.Bytes()); err != nil {
			return err
		}

		e.logger.Info("Card %03d", card.Number)
	}

	return nil
}
