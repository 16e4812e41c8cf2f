package shell_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	bapanel "github.com/b0id/blackarch-panel"
	"github.com/b0id/blackarch-panel/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteScript(t *testing.T) {
	t.Parallel()

	t.Run("writes an executable wrapper script", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writer := shell.NewWriter(dir)

		path, err := writer.WriteScript(&bapanel.Tool{
			Name:             "nmap",
			ShortDescription: "Network exploration tool",
			HelpCommand:      "nmap --help || man nmap",
			Dependencies: []bapanel.Dependency{
				{Name: "pcre"},
				{Name: "libpcap"},
				{Name: "ndiff", Optional: true},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "nmap_wrapper.sh"), path)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

		body, err := os.ReadFile(path)
		require.NoError(t, err)
		script := string(body)

		assert.True(t, strings.HasPrefix(script, "#!/bin/bash\n"))
		assert.Contains(t, script, "command -v nmap")
		assert.Contains(t, script, "sudo pacman -S nmap")
		assert.Contains(t, script, `nmap "$@"`)

		// Required dependencies are checked, optional ones aren't.
		assert.Contains(t, script, "pacman -Q pcre")
		assert.Contains(t, script, "pacman -Q libpcap")
		assert.NotContains(t, script, "pacman -Q ndiff")
	})

	t.Run("quotes metacharacters in descriptions", func(t *testing.T) {
		t.Parallel()

		writer := shell.NewWriter(t.TempDir())

		path, err := writer.WriteScript(&bapanel.Tool{
			Name:             "x",
			ShortDescription: `scanner; it's "fast" $(and loud)`,
			HelpCommand:      "x --help || man x",
		})
		require.NoError(t, err)

		body, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Contains(t, string(body), `'scanner; it'\''s "fast" $(and loud)'`)
	})

	t.Run("rejects tool names that are not command names", func(t *testing.T) {
		t.Parallel()

		writer := shell.NewWriter(t.TempDir())

		_, err := writer.WriteScript(&bapanel.Tool{Name: "evil; rm -rf /"})
		assert.Equal(t, bapanel.EINVALID, bapanel.ErrorCode(err))

		_, err = writer.WriteScript(&bapanel.Tool{Name: "../escape"})
		assert.Equal(t, bapanel.EINVALID, bapanel.ErrorCode(err))
	})

	t.Run("rejects a tool without a name", func(t *testing.T) {
		t.Parallel()

		writer := shell.NewWriter(t.TempDir())

		_, err := writer.WriteScript(&bapanel.Tool{})
		assert.Equal(t, bapanel.EINVALID, bapanel.ErrorCode(err))
	})
}
