package sqlite_test

import (
	"context"
	"testing"

	bapanel "github.com/b0id/blackarch-panel"
	"github.com/b0id/blackarch-panel/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolService_ImportSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("imports tools with their details", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewToolService(setupTestDB(t))
		ctx := context.Background()

		snap := &bapanel.Snapshot{
			Tools: []*bapanel.Tool{
				{
					Name:        "nmap",
					Version:     "7.94-1",
					LastUpdated: 1700000000,
					Categories:  []string{"blackarch-scanner"},
					Dependencies: []bapanel.Dependency{
						{Name: "pcre"},
					},
				},
				{Name: "amass"},
			},
			ExportedAt: 1700000001,
			Filter:     bapanel.SnapshotFilter{Type: bapanel.FilterAll},
		}

		count, err := svc.ImportSnapshot(ctx, snap)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		got, err := svc.FindToolByName(ctx, "nmap")
		require.NoError(t, err)
		assert.Equal(t, int64(1700000000), got.LastUpdated, "snapshot timestamp should survive import")
		assert.Equal(t, []string{"blackarch-scanner"}, got.Categories)

		// A record without a timestamp gets stamped at import time.
		got, err = svc.FindToolByName(ctx, "amass")
		require.NoError(t, err)
		assert.NotZero(t, got.LastUpdated)
	})

	t.Run("importing the same snapshot twice changes nothing", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewToolService(db)
		ctx := context.Background()

		rowCounts := func() (tools, deps, cats int) {
			require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tools").Scan(&tools))
			require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dependencies").Scan(&deps))
			require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tool_categories").Scan(&cats))
			return tools, deps, cats
		}

		snap := &bapanel.Snapshot{
			Tools: []*bapanel.Tool{
				{
					Name:        "nmap",
					Version:     "7.94-1",
					LastUpdated: 1700000000,
					Categories:  []string{"blackarch-scanner", "blackarch-recon"},
					Dependencies: []bapanel.Dependency{
						{Name: "pcre"},
						{Name: "libssh2", Optional: true},
					},
				},
				{Name: "amass", LastUpdated: 1700000000},
			},
		}

		count, err := svc.ImportSnapshot(ctx, snap)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		first, err := svc.FindToolByName(ctx, "nmap")
		require.NoError(t, err)
		tools1, deps1, cats1 := rowCounts()

		count, err = svc.ImportSnapshot(ctx, snap)
		require.NoError(t, err)
		assert.Equal(t, 2, count)

		second, err := svc.FindToolByName(ctx, "nmap")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		// Dependency and category rows are replaced, not appended, so
		// the row counts must not grow.
		tools2, deps2, cats2 := rowCounts()
		assert.Equal(t, tools1, tools2)
		assert.Equal(t, deps1, deps2)
		assert.Equal(t, cats1, cats2)
	})

	t.Run("overwrites existing tools", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewToolService(setupTestDB(t))
		ctx := context.Background()

		mustUpsert(t, svc, &bapanel.Tool{
			Name:       "nmap",
			Version:    "7.93-1",
			Categories: []string{"blackarch-recon"},
		})

		_, err := svc.ImportSnapshot(ctx, &bapanel.Snapshot{
			Tools: []*bapanel.Tool{{
				Name:        "nmap",
				Version:     "7.94-1",
				LastUpdated: 1700000000,
				Categories:  []string{"blackarch-scanner"},
			}},
		})
		require.NoError(t, err)

		got, err := svc.FindToolByName(ctx, "nmap")
		require.NoError(t, err)
		assert.Equal(t, "7.94-1", got.Version)
		assert.Equal(t, []string{"blackarch-scanner"}, got.Categories)
	})

	t.Run("rolls back the whole import on a bad record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewToolService(setupTestDB(t))
		ctx := context.Background()

		snap := &bapanel.Snapshot{
			Tools: []*bapanel.Tool{
				{Name: "good"},
				{}, // missing name
			},
		}

		_, err := svc.ImportSnapshot(ctx, snap)
		assert.Equal(t, bapanel.EINVALID, bapanel.ErrorCode(err))

		// Nothing from the failed import is visible.
		count, err := svc.CountTools(ctx, bapanel.ToolFilter{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("rejects a nil snapshot", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewToolService(setupTestDB(t))

		_, err := svc.ImportSnapshot(context.Background(), nil)
		assert.Equal(t, bapanel.EINVALID, bapanel.ErrorCode(err))
	})

	t.Run("round-trips an exported snapshot", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()

		src := sqlite.NewToolService(setupTestDB(t))
		mustUpsert(t, src,
			&bapanel.Tool{
				Name:         "sqlmap",
				Version:      "1.8-1",
				Categories:   []string{"blackarch-webapp"},
				Dependencies: []bapanel.Dependency{{Name: "python"}},
			},
		)

		snap, err := bapanel.BuildSnapshot(ctx, src, bapanel.ToolFilter{})
		require.NoError(t, err)

		dst := sqlite.NewToolService(setupTestDB(t))
		count, err := dst.ImportSnapshot(ctx, snap)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		got, err := dst.FindToolByName(ctx, "sqlmap")
		require.NoError(t, err)
		assert.Equal(t, "1.8-1", got.Version)
		assert.Equal(t, []string{"blackarch-webapp"}, got.Categories)
		assert.Equal(t, []bapanel.Dependency{{Name: "python"}}, got.Dependencies)
	})
}
