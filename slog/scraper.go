package slog

import (
	"context"
	"log/slog"
	"time"

	bapanel "github.com/b0id/blackarch-panel"
)

// Ensure LoggingScraper implements bapanel.DescriptionScraper.
var _ bapanel.DescriptionScraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a DescriptionScraper with timing and error logging.
type LoggingScraper struct {
	next   bapanel.DescriptionScraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next bapanel.DescriptionScraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// ScrapeDescriptions delegates to the wrapped scraper and logs the outcome.
func (s *LoggingScraper) ScrapeDescriptions(ctx context.Context) (map[string]string, error) {
	begin := time.Now()
	descriptions, err := s.next.ScrapeDescriptions(ctx)
	if err != nil {
		s.logger.Error("scrape descriptions", "error", err, "duration", time.Since(begin))
		return nil, err
	}
	s.logger.Info("scrape descriptions", "count", len(descriptions), "duration", time.Since(begin))
	return descriptions, nil
}
