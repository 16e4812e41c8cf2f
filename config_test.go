package bapanel_test

import (
	"os"
	"path/filepath"
	"testing"

	bapanel "github.com/b0id/blackarch-panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := bapanel.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, bapanel.DefaultConfig(), cfg)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
db: /var/lib/bapanel/tools.db
batch_size: 10
scrape:
  base_url: https://example.org
  pages:
    - /one.html
  rps: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := bapanel.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/bapanel/tools.db", cfg.DB)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, "https://example.org", cfg.Scrape.BaseURL)
	assert.Equal(t, []string{"/one.html"}, cfg.Scrape.Pages)
	assert.Equal(t, 0.5, cfg.Scrape.RPS)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, bapanel.DefaultConfig().Log, cfg.Log)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch_size: -1\n"), 0o644))

	cfg, err := bapanel.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, bapanel.DefaultConfig().BatchSize, cfg.BatchSize)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: [unclosed\n"), 0o644))

	_, err := bapanel.LoadConfig(path)
	assert.Equal(t, bapanel.EINVALID, bapanel.ErrorCode(err))
}
