// Package http provides the HTTP fetcher and sitemap-based page
// discovery for the project website.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	bapanel "github.com/b0id/blackarch-panel"
)

// DefaultFetchTimeout bounds a single page request.
const DefaultFetchTimeout = 10 * time.Second

var _ bapanel.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages over plain HTTP. The project website serves
// static HTML, so no JavaScript rendering is involved.
type Fetcher struct {
	client *http.Client
}

// Option configures the Fetcher's HTTP client.
type Option func(*http.Client)

// WithTimeout bounds each request. Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *http.Client) {
		c.Timeout = d
	}
}

// NewFetcher returns a Fetcher with its own HTTP client.
func NewFetcher(opts ...Option) *Fetcher {
	client := &http.Client{Timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(client)
	}
	return &Fetcher{client: client}
}

// Fetch retrieves the page body at the URL. Any status other than 200
// is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close implements bapanel.Fetcher. The plain HTTP client needs no
// explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
