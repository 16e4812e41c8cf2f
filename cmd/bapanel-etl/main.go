// Command bapanel-etl harvests BlackArch package metadata from pacman and
// blackarch.org and loads it into the local SQLite store. It takes no
// flags; behavior is controlled by an optional YAML config file and the
// BAPANEL_DB environment variable.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	bapanel "github.com/b0id/blackarch-panel"
	"github.com/b0id/blackarch-panel/etl"
	"github.com/b0id/blackarch-panel/goquery"
	bahttp "github.com/b0id/blackarch-panel/http"
	"github.com/b0id/blackarch-panel/pacman"
	baslog "github.com/b0id/blackarch-panel/slog"
	"github.com/b0id/blackarch-panel/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path. Set before calling Run().
	ConfigPath string

	// Effective configuration, populated by Run.
	Config bapanel.Config

	// SQLite database holding the tool store.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: defaultConfigPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the full extract-transform-load pipeline.
func (m *Main) Run(ctx context.Context, stdout, stderr io.Writer) error {
	cfg, err := bapanel.LoadConfig(m.ConfigPath)
	if err != nil {
		return err
	}
	if path := os.Getenv("BAPANEL_DB"); path != "" {
		cfg.DB = path
	}
	m.Config = cfg

	logFile, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q: %w", cfg.Log, err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m.DB = sqlite.NewDB(cfg.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: set BAPANEL_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", cfg.DB, err)
	}
	defer m.Close()

	fetcher := bahttp.NewFetcher()
	defer fetcher.Close()

	scraper := &etl.Scraper{
		BaseURL:    cfg.Scrape.BaseURL,
		Pages:      cfg.Scrape.Pages,
		Fetcher:    fetcher,
		Parser:     goquery.NewParser(),
		Discoverer: bahttp.NewPageService(nil),
		Limiter:    etl.NewDomainLimiter(cfg.Scrape.RPS),
		Logger:     logger,
	}

	loader := &etl.Loader{
		Index:     baslog.NewLoggingPackageIndex(pacman.NewIndex(), logger),
		Scraper:   baslog.NewLoggingScraper(scraper, logger),
		Tools:     sqlite.NewToolService(m.DB),
		BatchSize: cfg.BatchSize,
		Logger:    logger,
	}

	fmt.Fprintf(stdout, "Loading BlackArch tool metadata into %s (log: %s)\n", cfg.DB, cfg.Log)

	stats, err := loader.Run(ctx, progressPrinter(stdout))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(stdout, "Interrupted. Batches committed so far are kept.")
			return nil
		}
		return err
	}

	elapsed := time.Since(stats.Started).Round(time.Second)
	fmt.Fprintf(stdout, "Done: %d tools loaded, %d skipped in %s\n", stats.Processed, stats.Skipped, elapsed)
	return nil
}

// progressPrinter returns a progress callback that narrates the run on
// the given writer.
func progressPrinter(w io.Writer) etl.ProgressFunc {
	return func(event etl.ProgressEvent) {
		switch event.Type {
		case etl.ProgressStarted:
			fmt.Fprintf(w, "Found %d tools in %d batches\n", event.Total, event.Batches)
		case etl.ProgressToolSkipped:
			fmt.Fprintf(w, "  skipped %s: %s\n", event.Tool, bapanel.ErrorMessage(event.Error))
		case etl.ProgressBatchDone:
			fmt.Fprintf(w, "Batch %d/%d done (%d/%d tools", event.Batch, event.Batches, event.Done, event.Total)
			if stats := event.LoadStats; stats != nil && stats.Rate() > 0 && event.Done < event.Total {
				fmt.Fprintf(w, ", %.1f tools/s, ETA %s", stats.Rate(), stats.ETA(event.Total).Round(time.Second))
			}
			fmt.Fprintln(w, ")")
		case etl.ProgressValidated:
			if event.Stats != nil {
				fmt.Fprintf(w, "  store check: %d tools, %d categories, %d dependencies\n",
					event.Stats.Tools, event.Stats.Categories, event.Stats.Dependencies)
			}
		case etl.ProgressFinished:
			// The run summary is printed by the caller.
		}
	}
}

func defaultConfigPath() string {
	if path := os.Getenv("BAPANEL_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "bapanel", "config.yaml")
}
