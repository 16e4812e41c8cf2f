package bapanel_test

import (
	"context"
	"testing"

	bapanel "github.com/b0id/blackarch-panel"
	"github.com/b0id/blackarch-panel/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("collects full details for every match", func(t *testing.T) {
		t.Parallel()

		svc := &mock.ToolService{
			FindToolsFn: func(ctx context.Context, filter bapanel.ToolFilter) ([]*bapanel.Tool, error) {
				assert.Zero(t, filter.Limit)
				assert.Zero(t, filter.Offset)
				return []*bapanel.Tool{{Name: "amass"}, {Name: "nmap"}}, nil
			},
			FindToolByNameFn: func(ctx context.Context, name string) (*bapanel.Tool, error) {
				return &bapanel.Tool{
					Name:       name,
					Categories: []string{"blackarch-scanner"},
					Dependencies: []bapanel.Dependency{
						{Name: "pcre", Optional: false},
					},
				}, nil
			},
		}

		snap, err := bapanel.BuildSnapshot(context.Background(), svc, bapanel.ToolFilter{})
		require.NoError(t, err)

		require.Len(t, snap.Tools, 2)
		assert.Equal(t, "amass", snap.Tools[0].Name)
		assert.Equal(t, []string{"blackarch-scanner"}, snap.Tools[0].Categories)
		assert.NotZero(t, snap.ExportedAt)
		assert.Equal(t, bapanel.FilterAll, snap.Filter.Type)
	})

	t.Run("pagination on the filter is ignored", func(t *testing.T) {
		t.Parallel()

		svc := &mock.ToolService{
			FindToolsFn: func(ctx context.Context, filter bapanel.ToolFilter) ([]*bapanel.Tool, error) {
				assert.Zero(t, filter.Limit)
				assert.Zero(t, filter.Offset)
				return nil, nil
			},
		}

		snap, err := bapanel.BuildSnapshot(context.Background(), svc, bapanel.ToolFilter{Offset: 40, Limit: 20})
		require.NoError(t, err)
		assert.Empty(t, snap.Tools)
	})

	t.Run("records the category filter", func(t *testing.T) {
		t.Parallel()

		category := "blackarch-fuzzer"
		svc := &mock.ToolService{
			FindToolsFn: func(ctx context.Context, filter bapanel.ToolFilter) ([]*bapanel.Tool, error) {
				return nil, nil
			},
		}

		snap, err := bapanel.BuildSnapshot(context.Background(), svc, bapanel.ToolFilter{Category: &category})
		require.NoError(t, err)
		assert.Equal(t, bapanel.FilterCategory, snap.Filter.Type)
		assert.Equal(t, category, snap.Filter.Value)
	})

	t.Run("records a tool list filter with its size", func(t *testing.T) {
		t.Parallel()

		svc := &mock.ToolService{
			FindToolsFn: func(ctx context.Context, filter bapanel.ToolFilter) ([]*bapanel.Tool, error) {
				return []*bapanel.Tool{{Name: "sqlmap"}}, nil
			},
			FindToolByNameFn: func(ctx context.Context, name string) (*bapanel.Tool, error) {
				return &bapanel.Tool{Name: name}, nil
			},
		}

		snap, err := bapanel.BuildSnapshot(context.Background(), svc, bapanel.ToolFilter{Names: []string{"sqlmap"}})
		require.NoError(t, err)
		assert.Equal(t, bapanel.FilterTools, snap.Filter.Type)
		assert.Equal(t, "1 tools", snap.Filter.Value)
	})

	t.Run("detail lookup failure aborts the snapshot", func(t *testing.T) {
		t.Parallel()

		svc := &mock.ToolService{
			FindToolsFn: func(ctx context.Context, filter bapanel.ToolFilter) ([]*bapanel.Tool, error) {
				return []*bapanel.Tool{{Name: "ghost"}}, nil
			},
			FindToolByNameFn: func(ctx context.Context, name string) (*bapanel.Tool, error) {
				return nil, bapanel.Errorf(bapanel.ENOTFOUND, "tool %q not found", name)
			},
		}

		_, err := bapanel.BuildSnapshot(context.Background(), svc, bapanel.ToolFilter{})
		assert.Equal(t, bapanel.ENOTFOUND, bapanel.ErrorCode(err))
	})
}
