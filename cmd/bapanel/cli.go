package main

import (
	"context"
	"io"

	bapanel "github.com/b0id/blackarch-panel"
	"github.com/b0id/blackarch-panel/lipgloss"
)

// Default output files for the filtered export flags.
const (
	defaultCategoryExportFile = "blackarch_category_export.json"
	defaultSearchExportFile   = "blackarch_search_export.json"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Tools    bapanel.ToolService
	Scripts  bapanel.ScriptWriter
	Renderer *lipgloss.Renderer
}

// CLI defines the command-line interface structure for Kong. The browser
// is flag-driven: exactly one mode flag selects an action, and no flags
// at all drops into the interactive menu.
type CLI struct {
	Category       string `short:"c" help:"List tools in a category"`
	Search         string `short:"s" help:"Search tools by name or description"`
	Tool           string `short:"t" help:"Show details for a specific tool"`
	All            bool   `short:"a" help:"List all tools"`
	Page           int    `default:"1" help:"Page number for --all"`
	PageSize       int    `default:"20" help:"Tools per page for --all"`
	Export         string `short:"e" help:"Export tools to a JSON file"`
	ExportCategory string `help:"Export tools in the given category"`
	ExportSearch   string `help:"Export tools matching the given search term"`
	Import         string `help:"Import tools from a JSON file"`
	DB             string `help:"Database path (overrides BAPANEL_DB)"`
}

// Run dispatches to the mode selected by the flags. The filtered export
// flags are checked before the plain export flag so that --export can
// double as the output filename for --export-category and --export-search.
func (c *CLI) Run(deps *Dependencies) error {
	switch {
	case c.Category != "":
		return c.runCategory(deps)
	case c.Search != "":
		return c.runSearch(deps)
	case c.Tool != "":
		return c.runTool(deps)
	case c.All:
		return c.runAll(deps)
	case c.ExportCategory != "":
		file := c.Export
		if file == "" {
			file = defaultCategoryExportFile
		}
		return exportTools(deps, bapanel.ToolFilter{Category: &c.ExportCategory}, file)
	case c.ExportSearch != "":
		file := c.Export
		if file == "" {
			file = defaultSearchExportFile
		}
		return exportTools(deps, bapanel.ToolFilter{Search: &c.ExportSearch}, file)
	case c.Export != "":
		return exportTools(deps, bapanel.ToolFilter{}, c.Export)
	case c.Import != "":
		return importTools(deps, c.Import)
	default:
		return runInteractive(deps)
	}
}
