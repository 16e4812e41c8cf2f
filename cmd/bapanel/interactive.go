package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	bapanel "github.com/b0id/blackarch-panel"
)

// errQuit unwinds nested menus back to the top of runInteractive.
var errQuit = errors.New("quit")

// prompter reads line-oriented answers off an input stream.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints the prompt and returns the next input line, trimmed. The
// second return is false once the input stream is exhausted.
func (p *prompter) ask(prompt string) (string, bool) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// runInteractive drives the menu loop used when no mode flag is given.
func runInteractive(deps *Dependencies) error {
	p := newPrompter(deps.Stdin, deps.Stdout)

	for {
		fmt.Fprintln(deps.Stdout)
		fmt.Fprintln(deps.Stdout, deps.Renderer.Success("BlackArch Panel"))
		fmt.Fprintln(deps.Stdout, "1. List categories")
		fmt.Fprintln(deps.Stdout, "2. List all tools")
		fmt.Fprintln(deps.Stdout, "3. Search tools")
		fmt.Fprintln(deps.Stdout, "4. Show random tool")
		fmt.Fprintln(deps.Stdout, "5. Export to JSON")
		fmt.Fprintln(deps.Stdout, "6. Import from JSON")
		fmt.Fprintln(deps.Stdout, "q. Quit")

		choice, ok := p.ask("Select an option [1]: ")
		if !ok {
			return nil
		}
		if choice == "" {
			choice = "1"
		}

		var err error
		switch strings.ToLower(choice) {
		case "q":
			return nil
		case "1":
			err = browseCategories(deps, p)
		case "2":
			err = browseAll(deps, p)
		case "3":
			err = browseSearch(deps, p)
		case "4":
			err = showRandomTool(deps, p)
		case "5":
			err = exportMenu(deps, p)
		case "6":
			err = importMenu(deps, p)
		default:
			fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("Invalid option."))
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// browseCategories drills down from the category list to a tool detail.
func browseCategories(deps *Dependencies, p *prompter) error {
	cats, err := deps.Tools.ListCategories(deps.Ctx)
	if err != nil {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return nil
	}
	if len(cats) == 0 {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("No categories in the database."))
		return nil
	}

	fmt.Fprintln(deps.Stdout, deps.Renderer.Categories(cats))

	choice, ok := p.ask("Enter a category number or 'b' to go back: ")
	if !ok || strings.EqualFold(choice, "b") || choice == "" {
		return nil
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(cats) {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("Invalid category number."))
		return nil
	}

	category := cats[idx-1].Name
	tools, err := deps.Tools.FindTools(deps.Ctx, bapanel.ToolFilter{Category: &category})
	if err != nil {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return nil
	}
	if len(tools) == 0 {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning(fmt.Sprintf("No tools found in category %q.", category)))
		return nil
	}

	page := bapanel.ToolPage{Tools: tools, Page: 1, PageSize: len(tools), Total: len(tools), TotalPages: 1}
	fmt.Fprintln(deps.Stdout, deps.Renderer.Tools(fmt.Sprintf("Tools in %s", category), page))

	return selectTool(deps, p, tools)
}

// browseAll pages through the full tool listing with n/p/b/q controls.
func browseAll(deps *Dependencies, p *prompter) error {
	page := 1
	const pageSize = 20

	for {
		tp, err := loadPage(deps, bapanel.ToolFilter{}, page, pageSize)
		if err != nil {
			fmt.Fprintln(deps.Stdout, deps.Renderer.Error(bapanel.ErrorMessage(err)))
			return nil
		}
		if tp.Total == 0 {
			fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("No tools in the database."))
			return nil
		}

		fmt.Fprintln(deps.Stdout, deps.Renderer.Tools("All BlackArch Tools", tp))

		choice, ok := p.ask("Enter a tool number, 'n' next, 'p' previous, 'b' back, or 'q' quit: ")
		if !ok {
			return errQuit
		}
		switch strings.ToLower(choice) {
		case "q":
			return errQuit
		case "b", "":
			return nil
		case "n":
			if page < tp.TotalPages {
				page++
			}
		case "p":
			if page > 1 {
				page--
			}
		default:
			// Row numbers continue across pages, so the selection is an
			// absolute index into the listing.
			idx, err := strconv.Atoi(choice)
			rel := idx - (page-1)*pageSize
			if err != nil || rel < 1 || rel > len(tp.Tools) {
				fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("Invalid tool number."))
				continue
			}
			showTool(deps, p, tp.Tools[rel-1].Name)
		}
	}
}

// browseSearch prompts for a term and lists matches for selection.
func browseSearch(deps *Dependencies, p *prompter) error {
	term, ok := p.ask("Enter a search term: ")
	if !ok {
		return errQuit
	}
	if term == "" {
		return nil
	}

	tools, err := deps.Tools.FindTools(deps.Ctx, bapanel.ToolFilter{Search: &term})
	if err != nil {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		return nil
	}
	if len(tools) == 0 {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning(fmt.Sprintf("No tools matching %q.", term)))
		return nil
	}

	page := bapanel.ToolPage{Tools: tools, Page: 1, PageSize: len(tools), Total: len(tools), TotalPages: 1}
	fmt.Fprintln(deps.Stdout, deps.Renderer.Tools(fmt.Sprintf("Search results for %q", term), page))

	return selectTool(deps, p, tools)
}

// selectTool prompts for a numbered selection out of a rendered listing.
func selectTool(deps *Dependencies, p *prompter, tools []*bapanel.Tool) error {
	choice, ok := p.ask("Enter a tool number, 'b' to go back, or 'q' to quit: ")
	if !ok || strings.EqualFold(choice, "q") {
		return errQuit
	}
	if strings.EqualFold(choice, "b") || choice == "" {
		return nil
	}

	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(tools) {
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("Invalid tool number."))
		return nil
	}

	showTool(deps, p, tools[idx-1].Name)
	return nil
}

// showRandomTool picks one tool at random and shows its detail view.
func showRandomTool(deps *Dependencies, p *prompter) error {
	tool, err := deps.Tools.RandomTool(deps.Ctx)
	if err != nil {
		if bapanel.ErrorCode(err) == bapanel.ENOTFOUND {
			fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("No tools in the database."))
		} else {
			fmt.Fprintln(deps.Stdout, deps.Renderer.Error(bapanel.ErrorMessage(err)))
		}
		return nil
	}

	fmt.Fprintln(deps.Stdout, deps.Renderer.Success(fmt.Sprintf("Randomly selected tool: %s", tool.Name)))
	showTool(deps, p, tool.Name)
	return nil
}

// exportMenu walks the export submenu: all tools, one category, or a
// search result set.
func exportMenu(deps *Dependencies, p *prompter) error {
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, deps.Renderer.Success("Export Options"))
	fmt.Fprintln(deps.Stdout, "1. Export all tools")
	fmt.Fprintln(deps.Stdout, "2. Export tools by category")
	fmt.Fprintln(deps.Stdout, "3. Export tools by search")
	fmt.Fprintln(deps.Stdout, "b. Back")

	choice, ok := p.ask("Select an export option [1]: ")
	if !ok {
		return errQuit
	}
	if strings.EqualFold(choice, "b") {
		return nil
	}
	if choice == "" {
		choice = "1"
	}

	file, ok := p.ask("Enter an output filename [blackarch_tools.json]: ")
	if !ok {
		return errQuit
	}
	if file == "" {
		file = "blackarch_tools.json"
	}

	switch choice {
	case "1":
		_ = exportTools(deps, bapanel.ToolFilter{}, file)
	case "2":
		cats, err := deps.Tools.ListCategories(deps.Ctx)
		if err != nil || len(cats) == 0 {
			fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("No categories in the database."))
			return nil
		}
		fmt.Fprintln(deps.Stdout, deps.Renderer.Categories(cats))
		catChoice, ok := p.ask("Enter a category number or 'b' to cancel: ")
		if !ok {
			return errQuit
		}
		idx, err := strconv.Atoi(catChoice)
		if err != nil || idx < 1 || idx > len(cats) {
			fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("Invalid category number."))
			return nil
		}
		_ = exportTools(deps, bapanel.ToolFilter{Category: &cats[idx-1].Name}, file)
	case "3":
		term, ok := p.ask("Enter a search term: ")
		if !ok {
			return errQuit
		}
		if term == "" {
			return nil
		}
		_ = exportTools(deps, bapanel.ToolFilter{Search: &term}, file)
	default:
		fmt.Fprintln(deps.Stdout, deps.Renderer.Warning("Invalid option."))
	}
	return nil
}

// importMenu prompts for a snapshot file and imports it.
func importMenu(deps *Dependencies, p *prompter) error {
	file, ok := p.ask("Enter a JSON filename to import [blackarch_tools.json]: ")
	if !ok {
		return errQuit
	}
	if file == "" {
		file = "blackarch_tools.json"
	}
	_ = importTools(deps, file)
	return nil
}
