package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/kpauljoseph/gridcards/internal/anki"
	"github.com/kpauljoseph/gridcards/internal/config"
	"github.com/kpauljoseph/gridcards/internal/export"
	"github.com/kpauljoseph/gridcards/internal/pdf"
	"github.com/kpauljoseph/gridcards/pkg/logger"
	"github.com/kpauljoseph/gridcards/pkg/utils"
	"github.com/kpauljoseph/gridcards/pkg/version"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	// An interrupt cancels the run between cards so deferred cleanup,
	// including the package scratch directory, still happens.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("gridcards", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	modeNames := make([]string, 0, len(export.Modes()))
	for _, m := range export.Modes() {
		modeNames = append(modeNames, string(m))
	}

	exportMode := fs.StringP("export", "e", "", "export format: "+strings.Join(modeNames, ", "))
	output := fs.StringP("output", "o", "", "output path (default: input basename)")
	deckName := fs.StringP("deck-name", "d", config.DefaultDeckName, "Anki deck name")
	configPath := fs.StringP("config", "c", "", "path to a YAML config file")
	dpi := fs.Float64("dpi", config.DefaultDPI, "image resolution for anki export")
	verbose := fs.BoolP("verbose", "v", false, "enable verbose logging")
	debug := fs.Bool("debug", false, "enable debug mode with trace logging")
	showVersion := fs.Bool("version", false, "print version information and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s: extract flashcards from a 2x4 grid PDF and export them.\n\n", version.GetVersionInfo())
		fmt.Fprintf(stderr, "Usage: gridcards <pdf_file> --export {%s} [flags]\n\n", strings.Join(modeNames, ","))
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExample: gridcards cards.pdf --export anki -o deck.apkg\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *showVersion {
		fmt.Fprint(stdout, version.GetDetailedVersionInfo())
		return exitOK
	}

	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "Error: exactly one input PDF file is required")
		fs.Usage()
		return exitUsage
	}
	if *exportMode == "" {
		fmt.Fprintln(stderr, "Error: --export is required")
		fs.Usage()
		return exitUsage
	}
	mode, err := export.ParseMode(*exportMode)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v (choose from %s)\n", err, strings.Join(modeNames, ", "))
		return exitUsage
	}

	log := logger.New(
		logger.WithOutput(stdout),
		logger.WithErrorOutput(stderr),
		logger.WithPrefix("[gridcards] "),
		logger.WithFlags(0),
	)
	log.SetVerbose(*verbose || *debug)
	if *debug {
		log.SetLevel(logger.LevelTrace)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return exitError
	}
	if fs.Changed("deck-name") {
		cfg.DeckName = *deckName
	}
	if fs.Changed("dpi") {
		cfg.DPI = *dpi
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	source := fs.Arg(0)
	out := *output
	if out == "" {
		out = mode.DefaultOutput(source)
	}
	log.Debug("Exporting %s as %s to %s", source, mode, out)

	doc, err := pdf.Open(source, log)
	if err != nil {
		if errors.Is(err, pdf.ErrSourceNotFound) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		return fail(stderr, err)
	}
	defer doc.Close()

	var ids anki.IDSource = anki.NewRandomIDs()
	if cfg.StableIDs {
		hash, err := utils.FileHash(source)
		if err != nil {
			return fail(stderr, err)
		}
		ids = anki.ContentIDs{Seed: hash}
	}

	exporter, err := export.New(mode, export.Options{
		Logger:   log,
		DeckName: cfg.DeckName,
		DPI:      cfg.DPI,
		IDs:      ids,
		TempDir:  cfg.TempDir,
	})
	if err != nil {
		return fail(stderr, err)
	}

	if err := exporter.Export(ctx, doc, out); err != nil {
		return fail(stderr, err)
	}

	log.Info("✓ Exported to %s", out)
	return exitOK
}

// fail prints the full error chain, with stack traces where the error
// carries them, followed by a one-line summary.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "%+v\n", err)
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitError
}
