package bapanel

import "context"

// PageParser extracts tool name to description pairs from a single
// category page of the project website.
type PageParser interface {
	ParsePage(html string) (map[string]string, error)
}

// PageDiscoverer finds the category pages of the project website.
type PageDiscoverer interface {
	// DiscoverPages returns page paths relative to the site root,
	// e.g. "/scanner.html".
	DiscoverPages(ctx context.Context, baseURL string) ([]string, error)
}

// DescriptionScraper collects long descriptions for tools from the
// project website. The result maps tool names to descriptions; tools
// missing from the map simply have no scraped description.
type DescriptionScraper interface {
	ScrapeDescriptions(ctx context.Context) (map[string]string, error)
}
