package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/beevik/etree"

	bapanel "github.com/b0id/blackarch-panel"
)

// Ensure PageService implements bapanel.PageDiscoverer at compile time.
var _ bapanel.PageDiscoverer = (*PageService)(nil)

// PageService discovers category pages from a site's sitemap. It is used
// when the loader configuration does not pin the page list explicitly.
type PageService struct {
	client *http.Client
}

// NewPageService creates a new PageService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewPageService(client *http.Client) *PageService {
	if client == nil {
		client = http.DefaultClient
	}
	return &PageService{client: client}
}

// DiscoverPages finds top-level HTML pages of the site from its sitemap,
// returned as paths relative to the site root, sorted and deduplicated.
// Sitemap URLs come from robots.txt directives, falling back to
// /sitemap.xml. A site without a sitemap yields an empty list, not an
// error.
func (s *PageService) DiscoverPages(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, bapanel.Errorf(bapanel.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	sitemapURLs, err := s.findSitemapURLs(ctx, base)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var pages []string
	for _, sitemapURL := range sitemapURLs {
		urls, err := s.parseSitemap(ctx, sitemapURL)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			p, ok := categoryPagePath(base, u)
			if !ok || seen[p] {
				continue
			}
			seen[p] = true
			pages = append(pages, p)
		}
	}

	sort.Strings(pages)
	return pages, nil
}

// categoryPagePath reduces a sitemap URL to a site-relative page path.
// Only same-host top-level .html pages qualify.
func categoryPagePath(base *url.URL, rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	if u.Host != base.Host {
		return "", false
	}
	p := u.Path
	if path.Dir(p) != "/" || !strings.HasSuffix(p, ".html") {
		return "", false
	}
	return p, true
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to /sitemap.xml.
func (s *PageService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.urlExists(ctx, sitemapURL.String())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{sitemapURL.String()}, nil
	}

	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *PageService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[len("sitemap:"):])
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// parseSitemap fetches a sitemap and extracts the URLs of its <urlset>.
func (s *PageService) parseSitemap(ctx context.Context, sitemapURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("empty sitemap XML")
	}

	var urls []string
	for _, u := range root.SelectElements("url") {
		loc := u.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			urls = append(urls, text)
		}
	}
	return urls, nil
}

// fetchURL performs a GET request and returns the response body.
func (s *PageService) fetchURL(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

// urlExists checks whether a URL responds with 200 to a HEAD request.
func (s *PageService) urlExists(ctx context.Context, rawURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
