// Package goquery extracts tool descriptions from the HTML tables of the
// project website's category pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	bapanel "github.com/b0id/blackarch-panel"
)

// Ensure Parser implements bapanel.PageParser at compile time.
var _ bapanel.PageParser = (*Parser)(nil)

// Parser parses category pages. Each page lists tools in a table where
// the first cell holds the tool name and the third its description.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParsePage extracts tool name to description pairs from one page.
// Rows with fewer than three cells or an empty name are skipped.
func (p *Parser) ParsePage(html string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, bapanel.Errorf(bapanel.EINVALID, "failed to parse HTML: %v", err)
	}

	descriptions := make(map[string]string)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		name := strings.TrimSpace(cells.Eq(0).Text())
		desc := strings.TrimSpace(cells.Eq(2).Text())
		if name == "" || desc == "" {
			return
		}
		descriptions[name] = desc
	})

	return descriptions, nil
}
