package mock

import (
	"context"

	bapanel "github.com/b0id/blackarch-panel"
)

var _ bapanel.DescriptionScraper = (*DescriptionScraper)(nil)

// DescriptionScraper is a mock implementation of bapanel.DescriptionScraper.
type DescriptionScraper struct {
	ScrapeDescriptionsFn func(ctx context.Context) (map[string]string, error)
}

func (s *DescriptionScraper) ScrapeDescriptions(ctx context.Context) (map[string]string, error) {
	return s.ScrapeDescriptionsFn(ctx)
}

var _ bapanel.PageParser = (*PageParser)(nil)

// PageParser is a mock implementation of bapanel.PageParser.
type PageParser struct {
	ParsePageFn func(html string) (map[string]string, error)
}

func (p *PageParser) ParsePage(html string) (map[string]string, error) {
	return p.ParsePageFn(html)
}

var _ bapanel.PageDiscoverer = (*PageDiscoverer)(nil)

// PageDiscoverer is a mock implementation of bapanel.PageDiscoverer.
type PageDiscoverer struct {
	DiscoverPagesFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (d *PageDiscoverer) DiscoverPages(ctx context.Context, baseURL string) ([]string, error) {
	return d.DiscoverPagesFn(ctx, baseURL)
}
