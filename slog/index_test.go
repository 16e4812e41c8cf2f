package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	bapanel "github.com/b0id/blackarch-panel"
	"github.com/b0id/blackarch-panel/mock"
	baslog "github.com/b0id/blackarch-panel/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingPackageIndex_ListTools(t *testing.T) {
	t.Parallel()

	t.Run("logs count and duration on success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PackageIndex{
			ListToolsFn: func(ctx context.Context) ([]string, error) {
				return []string{"nmap", "amass"}, nil
			},
		}

		index := baslog.NewLoggingPackageIndex(inner, logger)
		tools, err := index.ListTools(context.Background())
		require.NoError(t, err)
		assert.Len(t, tools, 2)

		output := buf.String()
		assert.Contains(t, output, "list tools")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs and propagates errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PackageIndex{
			ListToolsFn: func(ctx context.Context) ([]string, error) {
				return nil, errors.New("pacman missing")
			},
		}

		index := baslog.NewLoggingPackageIndex(inner, logger)
		_, err := index.ListTools(context.Background())
		require.Error(t, err)

		assert.Contains(t, buf.String(), "pacman missing")
	})
}

func TestLoggingPackageIndex_PackageInfo(t *testing.T) {
	t.Parallel()

	t.Run("delegates and stays quiet on success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PackageIndex{
			PackageInfoFn: func(ctx context.Context, name string) (*bapanel.PackageInfo, error) {
				return &bapanel.PackageInfo{Name: name}, nil
			},
		}

		index := baslog.NewLoggingPackageIndex(inner, logger)
		info, err := index.PackageInfo(context.Background(), "nmap")
		require.NoError(t, err)
		assert.Equal(t, "nmap", info.Name)

		// Success is debug level, invisible at the default level.
		assert.Empty(t, buf.String())
	})

	t.Run("warns on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.PackageIndex{
			PackageInfoFn: func(ctx context.Context, name string) (*bapanel.PackageInfo, error) {
				return nil, bapanel.Errorf(bapanel.ENOTFOUND, "package %q not found", name)
			},
		}

		index := baslog.NewLoggingPackageIndex(inner, logger)
		_, err := index.PackageInfo(context.Background(), "ghost")
		require.Error(t, err)

		assert.Contains(t, buf.String(), "tool=ghost")
	})
}

func TestLoggingScraper_ScrapeDescriptions(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.DescriptionScraper{
		ScrapeDescriptionsFn: func(ctx context.Context) (map[string]string, error) {
			return map[string]string{"nmap": "Port scanner"}, nil
		},
	}

	scraper := baslog.NewLoggingScraper(inner, logger)
	descs, err := scraper.ScrapeDescriptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, descs, 1)

	output := buf.String()
	assert.Contains(t, output, "scrape descriptions")
	assert.Contains(t, output, "count=1")
}
