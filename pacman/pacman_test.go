package pacman_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	bapanel "github.com/b0id/blackarch-panel"
	"github.com/b0id/blackarch-panel/pacman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeRunner(t *testing.T, outputs map[string]string) pacman.Runner {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) (string, error) {
		key := name + " " + strings.Join(args, " ")
		out, ok := outputs[key]
		if !ok {
			return "", errors.New("unexpected command: " + key)
		}
		return out, nil
	}
}

func TestIndex_ListTools(t *testing.T) {
	t.Parallel()

	t.Run("filters, deduplicates and sorts", func(t *testing.T) {
		t.Parallel()

		out := `blackarch-scanner nmap
blackarch-recon amass
blackarch-recon nmap
base-devel gcc
blackarch-webapp sqlmap
`
		idx := pacman.NewIndex(pacman.WithRunner(fakeRunner(t, map[string]string{
			"pacman -Sgg": out,
		})))

		tools, err := idx.ListTools(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"amass", "nmap", "sqlmap"}, tools)
	})

	t.Run("propagates command failure", func(t *testing.T) {
		t.Parallel()

		idx := pacman.NewIndex(pacman.WithRunner(func(ctx context.Context, name string, args ...string) (string, error) {
			return "", errors.New("pacman: command not found")
		}))

		_, err := idx.ListTools(context.Background())
		require.Error(t, err)
	})
}

func TestIndex_ListCategories(t *testing.T) {
	t.Parallel()

	out := `base-devel
blackarch-scanner
blackarch-recon
`
	idx := pacman.NewIndex(pacman.WithRunner(fakeRunner(t, map[string]string{
		"pacman -Sg": out,
	})))

	cats, err := idx.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"blackarch-recon", "blackarch-scanner"}, cats)
}

func TestIndex_PackageInfo(t *testing.T) {
	t.Parallel()

	t.Run("parses package details", func(t *testing.T) {
		t.Parallel()

		idx := pacman.NewIndex(pacman.WithRunner(fakeRunner(t, map[string]string{
			"pacman -Si nmap": "Version : 7.94-1\nDescription : Port scanner\n",
		})))

		info, err := idx.PackageInfo(context.Background(), "nmap")
		require.NoError(t, err)
		assert.Equal(t, "nmap", info.Name)
		assert.Equal(t, "7.94-1", info.Version)
	})

	t.Run("empty output means unknown package", func(t *testing.T) {
		t.Parallel()

		idx := pacman.NewIndex(pacman.WithRunner(fakeRunner(t, map[string]string{
			"pacman -Si ghost": "  \n",
		})))

		_, err := idx.PackageInfo(context.Background(), "ghost")
		assert.Equal(t, bapanel.ENOTFOUND, bapanel.ErrorCode(err))
	})
}
