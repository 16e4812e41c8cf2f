package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	bahttp "github.com/b0id/blackarch-panel/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sitemapXML(urls ...string) string {
	body := `<?xml version="1.0" encoding="UTF-8"?><urlset>`
	for _, u := range urls {
		body += fmt.Sprintf("<url><loc>%s</loc></url>", u)
	}
	return body + "</urlset>"
}

func TestPageService_DiscoverPages(t *testing.T) {
	t.Parallel()

	t.Run("discovers top-level html pages via robots.txt", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/sitemap.xml\n", server.URL)
		})
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(sitemapXML(
				server.URL+"/scanner.html",
				server.URL+"/fuzzer.html",
				server.URL+"/scanner.html",          // duplicate
				server.URL+"/blog/post.html",        // nested, skipped
				server.URL+"/downloads.txt",         // not html, skipped
				"https://other.example/webapp.html", // foreign host, skipped
			)))
		})
		server = httptest.NewServer(mux)
		defer server.Close()

		svc := bahttp.NewPageService(server.Client())

		pages, err := svc.DiscoverPages(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{"/fuzzer.html", "/scanner.html"}, pages)
	})

	t.Run("falls back to /sitemap.xml without robots directives", func(t *testing.T) {
		t.Parallel()

		var server *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(sitemapXML(server.URL + "/recon.html")))
		})
		server = httptest.NewServer(mux)
		defer server.Close()

		svc := bahttp.NewPageService(server.Client())

		pages, err := svc.DiscoverPages(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []string{"/recon.html"}, pages)
	})

	t.Run("site without a sitemap yields no pages", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		svc := bahttp.NewPageService(server.Client())

		pages, err := svc.DiscoverPages(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Empty(t, pages)
	})

	t.Run("rejects an unparseable base URL", func(t *testing.T) {
		t.Parallel()

		svc := bahttp.NewPageService(nil)

		_, err := svc.DiscoverPages(context.Background(), "://bad")
		require.Error(t, err)
	})
}
