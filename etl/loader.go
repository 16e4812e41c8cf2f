// Package etl drives the pipeline that fills the tool store: package
// names are listed from the local package database, enriched with
// metadata and scraped website descriptions, and written to the store in
// batches with a validation checkpoint after each batch.
package etl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	bapanel "github.com/b0id/blackarch-panel"
)

// DefaultBatchSize is the number of tools written between validation
// checkpoints.
const DefaultBatchSize = 50

// Loader orchestrates a load run.
type Loader struct {
	Index     bapanel.PackageIndex
	Scraper   bapanel.DescriptionScraper
	Tools     bapanel.ToolService
	BatchSize int
	Logger    *slog.Logger
}

// Stats accumulates the outcome of a load run.
type Stats struct {
	Processed int
	Skipped   int
	Batches   int
	Started   time.Time
}

// Rate returns processed tools per second since the run started.
func (s *Stats) Rate() float64 {
	elapsed := time.Since(s.Started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.Processed) / elapsed
}

// ETA estimates the remaining run time for the given total.
func (s *Stats) ETA(total int) time.Duration {
	rate := s.Rate()
	done := s.Processed + s.Skipped
	if rate <= 0 || done >= total {
		return 0
	}
	return time.Duration(float64(total-done)/rate) * time.Second
}

// ProgressEvent reports progress during a load run.
type ProgressEvent struct {
	Type    ProgressType
	Tool    string
	Done    int
	Total   int
	Batch   int
	Batches int
	Error   error
	Stats   *bapanel.StoreStats

	// LoadStats is the running tally, set on batch-done and finished
	// events.
	LoadStats *Stats
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressToolSkipped
	ProgressBatchDone
	ProgressValidated
	ProgressFinished
)

// ProgressFunc is a callback for reporting load progress.
type ProgressFunc func(event ProgressEvent)

// Run executes a full load. Tools whose metadata cannot be read are
// skipped and counted; store write failures abort the run. The website
// scrape happens once, before the first batch is written. Cancellation
// is honored between tools, so work committed so far stays in the store.
func (l *Loader) Run(ctx context.Context, progress ProgressFunc) (*Stats, error) {
	stats := &Stats{Started: time.Now()}
	notify := func(event ProgressEvent) {
		if progress != nil {
			progress(event)
		}
	}

	tools, err := l.Index.ListTools(ctx)
	if err != nil {
		return stats, err
	}
	if len(tools) == 0 {
		return stats, nil
	}

	if categories, err := l.Index.ListCategories(ctx); err != nil {
		l.log("listing categories failed", "error", err)
	} else {
		l.log("repository categories", "count", len(categories))
	}

	batchSize := l.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	batches := bapanel.PageCount(len(tools), batchSize)

	notify(ProgressEvent{Type: ProgressStarted, Total: len(tools), Batches: batches})

	var scraped map[string]string
	done := 0

	for batch := 0; batch < batches; batch++ {
		if batch == 0 && l.Scraper != nil {
			scraped, err = l.Scraper.ScrapeDescriptions(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return stats, ctx.Err()
				}
				l.log("description scrape failed", "error", err)
				scraped = nil
			} else {
				l.log("scraped descriptions", "count", len(scraped))
			}
		}

		start := batch * batchSize
		end := min(start+batchSize, len(tools))

		for _, name := range tools[start:end] {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			done++

			info, err := l.Index.PackageInfo(ctx, name)
			if err != nil {
				stats.Skipped++
				l.log("skipping tool", "tool", name, "error", err)
				notify(ProgressEvent{Type: ProgressToolSkipped, Tool: name, Done: done, Total: len(tools), Error: err})
				continue
			}

			if err := l.Tools.UpsertTool(ctx, buildTool(info, scraped)); err != nil {
				return stats, err
			}
			stats.Processed++
		}
		stats.Batches++

		if storeStats, err := l.Tools.Validate(ctx); err != nil {
			l.log("validation failed", "batch", batch+1, "error", err)
		} else {
			notify(ProgressEvent{Type: ProgressValidated, Batch: batch + 1, Batches: batches, Stats: storeStats})
		}

		notify(ProgressEvent{Type: ProgressBatchDone, Batch: batch + 1, Batches: batches, Done: done, Total: len(tools), LoadStats: stats})
	}

	notify(ProgressEvent{Type: ProgressFinished, Done: done, Total: len(tools), LoadStats: stats})
	return stats, nil
}

// buildTool assembles a store record from package metadata and the
// scraped description map.
func buildTool(info *bapanel.PackageInfo, scraped map[string]string) *bapanel.Tool {
	primary := bapanel.PrimaryCategory(info.Groups)

	long := info.Description
	if desc, ok := scraped[info.Name]; ok {
		long = desc
	}

	tool := &bapanel.Tool{
		Name:             info.Name,
		Version:          info.Version,
		PrimaryCategory:  primary,
		ShortDescription: info.Description,
		LongDescription:  long,
		UpstreamURL:      info.URL,
		HelpCommand:      bapanel.HelpCommand(info.Name),
	}

	for _, dep := range info.Dependencies {
		tool.Dependencies = append(tool.Dependencies, bapanel.Dependency{Name: dep})
	}
	for _, dep := range info.OptionalDeps {
		tool.Dependencies = append(tool.Dependencies, bapanel.Dependency{Name: dep, Optional: true})
	}

	tool.Categories = append(tool.Categories, primary)
	for _, group := range info.Groups {
		if group != primary && strings.HasPrefix(group, bapanel.CategoryPrefix) {
			tool.Categories = append(tool.Categories, group)
		}
	}

	return tool
}

func (l *Loader) log(msg string, args ...any) {
	if l.Logger != nil {
		l.Logger.Info(msg, args...)
	}
}
