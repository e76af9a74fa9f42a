package export

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/kpauljoseph/gridcards/pkg/logger"
)

// SeparateExporter writes every card as NNN-Front.pdf and NNN-Back.pdf.
type SeparateExporter struct {
	logger *logger.Logger
}

func NewSeparateExporter(log *logger.Logger) *SeparateExporter {
	return &SeparateExporter{logger: log}
}

func (e *SeparateExporter) Export(ctx context.Context, src Renderer, outputDir string) error {
	if err := ensureDir(outputDir); err != nil {
		return err
	}

	for card := range cards(src, e.logger) {
		if err := ctx.Err(); err != nil {
			return err
		}

		front, err := renderPDF(src, card.Front())
		if err != nil {
			return errors.Wrapf(err, "card %03d: failed to render question", card.Number)
		}
		if err := writeFile(filepath.Join(outputDir, cardName(card.Number, "Front")), front); err != nil {
			return err
		}

		back, err := renderPDF(src, card.Back())
		if err != nil {
			return errors.Wrapf(err, "card %03d: failed to render answer", card.Number)
		}
		if err := writeFile(filepath.Join(outputDir, cardName(card.Number, "Back")), back); err != nil {
			return err
		}

		e.logger.Info("Card %03d", card.Number)
	}

	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
