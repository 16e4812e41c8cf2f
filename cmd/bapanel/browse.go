package main

import (
	"fmt"
	"strings"

	bapanel "github.com/b0id/blackarch-panel"
)

// runCategory lists every tool in a single category.
func (c *CLI) runCategory(deps *Dependencies) error {
	tools, err := deps.Tools.FindTools(deps.Ctx, bapanel.ToolFilter{Category: &c.Category})
	if err != nil {
		fmt.Fprintln(deps.Stderr, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return nil
	}
	if len(tools) == 0 {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning(fmt.Sprintf("No tools found in category %q.", c.Category)))
		return nil
	}

	page := bapanel.ToolPage{Tools: tools, Page: 1, PageSize: len(tools), Total: len(tools), TotalPages: 1}
	fmt.Fprintln(deps.Stdout, deps.Renderer.Tools(fmt.Sprintf("Tools in %s", c.Category), page))
	return nil
}

// runSearch lists every tool matching a search term.
func (c *CLI) runSearch(deps *Dependencies) error {
	tools, err := deps.Tools.FindTools(deps.Ctx, bapanel.ToolFilter{Search: &c.Search})
	if err != nil {
		fmt.Fprintln(deps.Stderr, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return nil
	}
	if len(tools) == 0 {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning(fmt.Sprintf("No tools matching %q.", c.Search)))
		return nil
	}

	page := bapanel.ToolPage{Tools: tools, Page: 1, PageSize: len(tools), Total: len(tools), TotalPages: 1}
	fmt.Fprintln(deps.Stdout, deps.Renderer.Tools(fmt.Sprintf("Search results for %q", c.Search), page))
	return nil
}

// runTool shows the detail view for one tool, then offers wrapper
// generation and help-command execution.
func (c *CLI) runTool(deps *Dependencies) error {
	p := newPrompter(deps.Stdin, deps.Stdout)
	showTool(deps, p, c.Tool)
	return nil
}

// runAll prints one page of the full tool listing.
func (c *CLI) runAll(deps *Dependencies) error {
	page, err := loadPage(deps, bapanel.ToolFilter{}, c.Page, c.PageSize)
	if err != nil {
		fmt.Fprintln(deps.Stderr, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return nil
	}
	if page.Total == 0 {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("No tools in the database."))
		return nil
	}

	fmt.Fprintln(deps.Stdout, deps.Renderer.Tools("All BlackArch Tools", page))
	return nil
}

// loadPage runs the count and page queries behind a paginated listing.
func loadPage(deps *Dependencies, filter bapanel.ToolFilter, page, pageSize int) (bapanel.ToolPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total, err := deps.Tools.CountTools(deps.Ctx, filter)
	if err != nil {
		return bapanel.ToolPage{}, err
	}

	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	tools, err := deps.Tools.FindTools(deps.Ctx, filter)
	if err != nil {
		return bapanel.ToolPage{}, err
	}

	return bapanel.ToolPage{
		Tools:      tools,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: bapanel.PageCount(total, pageSize),
	}, nil
}

// showTool renders a tool's detail view and prompts for the follow-up
// actions. Lookup failures print a message and leave the process running.
func showTool(deps *Dependencies, p *prompter, name string) {
	tool, err := deps.Tools.FindToolByName(deps.Ctx, name)
	if err != nil {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return
	}

	// Related tools are decoration on the detail view. A failure here
	// should not hide the tool itself.
	related, err := deps.Tools.FindRelatedTools(deps.Ctx, name)
	if err != nil {
		related = nil
	}

	fmt.Fprintln(deps.Stdout, deps.Renderer.ToolDetail(tool, related))

	choice, ok := p.ask("Press 'g' to generate a wrapper script, 'h' to run the help command, or Enter to continue: ")
	if !ok {
		return
	}
	switch strings.ToLower(choice) {
	case "g":
		generateWrapper(deps, tool)
	case "h":
		runHelpCommand(deps, tool.HelpCommand)
	}
}

func generateWrapper(deps *Dependencies, tool *bapanel.Tool) {
	path, err := deps.Scripts.WriteScript(tool)
	if err != nil {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return
	}
	fmt.Fprintln(deps.Stdout, deps.Renderer.Success(fmt.Sprintf("Wrote wrapper script to %s", path)))
}
