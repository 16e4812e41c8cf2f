package bapanel

import (
	"context"
	"fmt"
)

// PackageInfo is the metadata of a single package as reported by the
// local package database.
type PackageInfo struct {
	Name         string
	Version      string
	Description  string
	URL          string
	Dependencies []string
	OptionalDeps []string
	Groups       []string
}

// PackageIndex provides access to the local package database.
type PackageIndex interface {
	// ListTools returns the names of all packages in the repository,
	// sorted and deduplicated.
	ListTools(ctx context.Context) ([]string, error)

	// ListCategories returns the names of all package groups in the
	// repository.
	ListCategories(ctx context.Context) ([]string, error)

	// PackageInfo retrieves the metadata for a single package.
	// Returns ENOTFOUND if the package database has no record of it.
	PackageInfo(ctx context.Context, name string) (*PackageInfo, error)
}

// HelpCommand returns the shell command used to show usage for a tool:
// the tool's own help flag, falling back to its man page.
func HelpCommand(name string) string {
	return fmt.Sprintf("%s --help || man %s", name, name)
}
