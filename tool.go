package bapanel

import (
	"context"
	"strings"
)

// Category naming conventions for the BlackArch repository. Every package
// group carries the repository prefix; packages that belong to no prefixed
// group are filed under the uncategorized bucket.
const (
	CategoryPrefix        = "blackarch-"
	UncategorizedCategory = "blackarch-uncategorized"
)

// Tool represents a catalogued package with its metadata.
// Dependencies and Categories are populated on detail lookups and exports;
// list queries leave them empty.
type Tool struct {
	Name             string `json:"tool_name"`
	Version          string `json:"version"`
	PrimaryCategory  string `json:"primary_category"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	UpstreamURL      string `json:"upstream_url"`
	HelpCommand      string `json:"help_command"`
	LastUpdated      int64  `json:"last_updated"`

	Dependencies []Dependency `json:"dependencies,omitempty"`
	Categories   []string     `json:"categories,omitempty"`
}

// Validate returns an error if the tool contains invalid fields.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "tool name required")
	}
	return nil
}

// Dependency is a single package dependency of a tool.
type Dependency struct {
	Name     string `json:"name"`
	Optional bool   `json:"optional"`
}

// CategoryCount pairs a category name with the number of tools in it.
type CategoryCount struct {
	Name  string `json:"name"`
	Tools int    `json:"tools"`
}

// RelatedTool is a tool ranked by the number of categories it shares
// with a reference tool.
type RelatedTool struct {
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	Shared           int    `json:"shared"`
}

// StoreStats summarizes the contents of the store for validation reports.
type StoreStats struct {
	Tables       []string `json:"tables"`
	Tools        int      `json:"tools"`
	Categories   int      `json:"categories"`
	Dependencies int      `json:"dependencies"`

	// Samples holds a few randomly chosen tools for spot checks.
	Samples []*Tool `json:"samples,omitempty"`
}

// ToolService represents a service for managing the tool store.
type ToolService interface {
	// UpsertTool inserts the tool or replaces an existing row with the
	// same name. Dependency and category rows are replaced wholesale.
	// The last-updated timestamp is stamped at write time.
	UpsertTool(ctx context.Context, tool *Tool) error

	// FindToolByName retrieves a tool with its dependencies and categories.
	// Returns ENOTFOUND if the tool does not exist.
	FindToolByName(ctx context.Context, name string) (*Tool, error)

	// FindTools retrieves tools matching the filter, ordered by name.
	FindTools(ctx context.Context, filter ToolFilter) ([]*Tool, error)

	// CountTools returns the number of tools matching the filter.
	CountTools(ctx context.Context, filter ToolFilter) (int, error)

	// ListCategories returns all categories with their tool counts,
	// ordered by category name.
	ListCategories(ctx context.Context) ([]CategoryCount, error)

	// FindRelatedTools returns up to five tools sharing the most
	// categories with the named tool, best match first.
	FindRelatedTools(ctx context.Context, name string) ([]RelatedTool, error)

	// RandomTool retrieves a uniformly random tool with full details.
	// Returns ENOTFOUND if the store is empty.
	RandomTool(ctx context.Context) (*Tool, error)

	// ImportSnapshot applies a snapshot in a single transaction and
	// returns the number of tools written. Any failure rolls the whole
	// import back.
	ImportSnapshot(ctx context.Context, snap *Snapshot) (int, error)

	// Validate inspects the store and returns summary statistics.
	Validate(ctx context.Context) (*StoreStats, error)
}

// ToolFilter represents a filter for FindTools and CountTools.
// Search matches case-insensitively against the name and both
// description fields.
type ToolFilter struct {
	Category *string  `json:"category"`
	Search   *string  `json:"search"`
	Names    []string `json:"names"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ToolPage is one page of a paginated tool listing.
type ToolPage struct {
	Tools      []*Tool
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// PageCount returns the number of pages needed to show total items at the
// given page size. A trailing partial page counts as a full page.
func PageCount(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// PrimaryCategory picks the tool's primary category from its package
// groups: the first group carrying the repository prefix wins, and tools
// without any prefixed group fall back to the uncategorized bucket.
func PrimaryCategory(groups []string) string {
	for _, g := range groups {
		if strings.HasPrefix(g, CategoryPrefix) {
			return g
		}
	}
	return UncategorizedCategory
}
