package bapanel_test

import (
	"testing"

	bapanel "github.com/b0id/blackarch-panel"
	"github.com/stretchr/testify/assert"
)

func TestToolValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid tool", func(t *testing.T) {
		t.Parallel()

		tool := &bapanel.Tool{Name: "nmap"}

		assert.NoError(t, tool.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		tool := &bapanel.Tool{Version: "7.94-1"}

		err := tool.Validate()
		assert.Equal(t, bapanel.EINVALID, bapanel.ErrorCode(err))
	})
}

func TestPrimaryCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		groups []string
		want   string
	}{
		{
			name:   "first prefixed group wins",
			groups: []string{"blackarch-scanner", "blackarch-recon"},
			want:   "blackarch-scanner",
		},
		{
			name:   "unprefixed groups are skipped",
			groups: []string{"base-devel", "blackarch-webapp"},
			want:   "blackarch-webapp",
		},
		{
			name:   "no prefixed group",
			groups: []string{"base-devel"},
			want:   bapanel.UncategorizedCategory,
		},
		{
			name:   "no groups at all",
			groups: nil,
			want:   bapanel.UncategorizedCategory,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, bapanel.PrimaryCategory(tt.groups))
		})
	}
}

func TestPageCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{name: "exact pages", total: 40, pageSize: 20, want: 2},
		{name: "partial last page", total: 41, pageSize: 20, want: 3},
		{name: "single short page", total: 5, pageSize: 20, want: 1},
		{name: "empty", total: 0, pageSize: 20, want: 0},
		{name: "zero page size", total: 10, pageSize: 0, want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, bapanel.PageCount(tt.total, tt.pageSize))
		})
	}
}

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nmap --help || man nmap", bapanel.HelpCommand("nmap"))
}
