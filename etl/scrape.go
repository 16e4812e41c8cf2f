package etl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"

	bapanel "github.com/b0id/blackarch-panel"
)

// defaultRetryDelays spaces the attempts for one page. A page is fetched
// once, then once more after each delay, so three delays mean four
// attempts in total.
var defaultRetryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

var _ bapanel.DescriptionScraper = (*Scraper)(nil)

// Scraper collects long tool descriptions from the category pages of the
// project website. Pages are fetched sequentially under the rate limit;
// a page that still fails after retries is logged and skipped rather
// than failing the scrape.
type Scraper struct {
	BaseURL     string
	Pages       []string
	Fetcher     bapanel.Fetcher
	Parser      bapanel.PageParser
	Discoverer  bapanel.PageDiscoverer
	Limiter     bapanel.DomainLimiter
	RetryDelays []time.Duration
	Logger      *slog.Logger
}

// ScrapeDescriptions fetches and parses every configured page. When no
// pages are configured it falls back to sitemap discovery; a site that
// yields no pages at all produces an empty result, not an error.
func (s *Scraper) ScrapeDescriptions(ctx context.Context) (map[string]string, error) {
	base, err := url.Parse(s.BaseURL)
	if err != nil {
		return nil, bapanel.Errorf(bapanel.EINVALID, "invalid base URL %q: %v", s.BaseURL, err)
	}

	pages := s.Pages
	if len(pages) == 0 && s.Discoverer != nil {
		pages, err = s.Discoverer.DiscoverPages(ctx, s.BaseURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.log("page discovery failed", "base_url", s.BaseURL, "error", err)
			return map[string]string{}, nil
		}
	}

	descriptions := make(map[string]string)
	seen := make(map[uint64]bool)

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return descriptions, err
		}

		ref, err := url.Parse(page)
		if err != nil {
			s.log("skipping unparseable page", "page", page, "error", err)
			continue
		}
		pageURL := base.ResolveReference(ref)

		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx, pageURL.Host); err != nil {
				return descriptions, err
			}
		}

		html, err := s.fetchPage(ctx, pageURL.String())
		if err != nil {
			if ctx.Err() != nil {
				return descriptions, ctx.Err()
			}
			s.log("page fetch failed", "url", pageURL.String(), "error", err)
			continue
		}

		// Mirrored pages serve identical content under several paths;
		// parse each body only once.
		hash := xxhash.Sum64String(html)
		if seen[hash] {
			continue
		}
		seen[hash] = true

		parsed, err := s.Parser.ParsePage(html)
		if err != nil {
			s.log("page parse failed", "url", pageURL.String(), "error", err)
			continue
		}
		for name, desc := range parsed {
			descriptions[name] = desc
		}
	}

	return descriptions, nil
}

// fetchPage fetches one page, retrying failures with the configured
// backoff delays. The context aborts both the backoff sleep and any
// further attempts.
func (s *Scraper) fetchPage(ctx context.Context, pageURL string) (string, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = defaultRetryDelays
	}

	html, err := s.Fetcher.Fetch(ctx, pageURL)
	for attempt := 0; err != nil && attempt < len(delays); attempt++ {
		s.log("retrying page fetch", "url", pageURL, "attempt", attempt+2, "error", err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
		html, err = s.Fetcher.Fetch(ctx, pageURL)
	}
	return html, err
}

func (s *Scraper) log(msg string, args ...any) {
	if s.Logger != nil {
		s.Logger.Warn(msg, args...)
	}
}
