// Package lipgloss renders query results for the terminal.
package lipgloss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	bapanel "github.com/b0id/blackarch-panel"
)

// Renderer formats store query results as styled terminal output.
type Renderer struct {
	title   lipgloss.Style
	header  lipgloss.Style
	name    lipgloss.Style
	dim     lipgloss.Style
	label   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	errs    lipgloss.Style
	panel   lipgloss.Style
	maxDesc int
}

// NewRenderer creates a Renderer with the default styles.
func NewRenderer() *Renderer {
	return &Renderer{
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true), // cyan
		header:  lipgloss.NewStyle().Bold(true),
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		dim:     lipgloss.NewStyle().Faint(true),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),            // yellow
		ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true), // green
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		errs:    lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true), // red
		panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		maxDesc: 60,
	}
}

// Categories renders the numbered category listing.
func (r *Renderer) Categories(cats []bapanel.CategoryCount) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Category", "Tools")
	for i, cat := range cats {
		t.Row(strconv.Itoa(i+1), cat.Name, strconv.Itoa(cat.Tools))
	}
	return r.title.Render("BlackArch Categories") + "\n" + t.Render() + "\n"
}

// Tools renders a page of tools under a title. Numbering continues
// across pages so a tool keeps its position in the full listing.
func (r *Renderer) Tools(title string, page bapanel.ToolPage) string {
	var b strings.Builder
	b.WriteString(r.title.Render(title))
	if page.TotalPages > 1 {
		b.WriteString(r.dim.Render(fmt.Sprintf(" (page %d/%d, %d tools)", page.Page, page.TotalPages, page.Total)))
	}
	b.WriteString("\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "Name", "Version", "Category", "Description")
	offset := (page.Page - 1) * page.PageSize
	for i, tool := range page.Tools {
		t.Row(
			strconv.Itoa(offset+i+1),
			r.name.Render(tool.Name),
			tool.Version,
			tool.PrimaryCategory,
			truncate(tool.ShortDescription, r.maxDesc),
		)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

// ToolDetail renders the full record of one tool with its related tools.
func (r *Renderer) ToolDetail(tool *bapanel.Tool, related []bapanel.RelatedTool) string {
	var b strings.Builder

	field := func(label, value string) {
		if value == "" {
			value = r.dim.Render("(none)")
		}
		b.WriteString(r.label.Render(label+":") + " " + value + "\n")
	}

	b.WriteString(r.title.Render(tool.Name) + "\n")
	field("Version", tool.Version)
	field("Category", tool.PrimaryCategory)
	field("Description", tool.ShortDescription)
	if tool.LongDescription != "" && tool.LongDescription != tool.ShortDescription {
		field("Details", tool.LongDescription)
	}
	field("Upstream", tool.UpstreamURL)
	field("Help", tool.HelpCommand)

	if len(tool.Categories) > 0 {
		field("All categories", strings.Join(tool.Categories, ", "))
	}
	if len(tool.Dependencies) > 0 {
		var deps []string
		for _, dep := range tool.Dependencies {
			if dep.Optional {
				deps = append(deps, dep.Name+r.dim.Render(" (optional)"))
			} else {
				deps = append(deps, dep.Name)
			}
		}
		field("Dependencies", strings.Join(deps, ", "))
	}

	out := r.panel.Render(strings.TrimRight(b.String(), "\n")) + "\n"

	if len(related) > 0 {
		var rel strings.Builder
		rel.WriteString(r.header.Render("Related tools") + "\n")
		for _, rt := range related {
			rel.WriteString(fmt.Sprintf("  %s %s %s\n",
				r.name.Render(rt.Name),
				r.dim.Render(fmt.Sprintf("(%d shared)", rt.Shared)),
				truncate(rt.ShortDescription, r.maxDesc)))
		}
		out += rel.String()
	}
	return out
}

// Stats renders a store validation summary.
func (r *Renderer) Stats(stats *bapanel.StoreStats) string {
	var b strings.Builder
	b.WriteString(r.title.Render("Store summary") + "\n")
	b.WriteString(fmt.Sprintf("  Tables: %s\n", strings.Join(stats.Tables, ", ")))
	b.WriteString(fmt.Sprintf("  Tools: %d  Categories: %d  Dependencies: %d\n",
		stats.Tools, stats.Categories, stats.Dependencies))
	for _, sample := range stats.Samples {
		b.WriteString(fmt.Sprintf("  sample: %s %s %s\n",
			r.name.Render(sample.Name), sample.Version, r.dim.Render(sample.PrimaryCategory)))
	}
	return b.String()
}

// Success renders a green status line.
func (r *Renderer) Success(msg string) string {
	return r.ok.Render(msg)
}

// Warning renders a yellow status line.
func (r *Renderer) Warning(msg string) string {
	return r.warn.Render(msg)
}

// Error renders a red status line.
func (r *Renderer) Error(msg string) string {
	return r.errs.Render(msg)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
