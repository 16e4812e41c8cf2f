package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	bapanel "github.com/b0id/blackarch-panel"
)

// Compile-time interface verification.
var _ bapanel.ToolService = (*ToolService)(nil)

// ToolService implements bapanel.ToolService using SQLite.
type ToolService struct {
	db *DB
}

// NewToolService creates a new ToolService.
func NewToolService(db *DB) *ToolService {
	return &ToolService{db: db}
}

const toolColumns = "t.tool_name, t.version, t.primary_category, t.short_description, t.long_description, t.upstream_url, t.help_command, t.last_updated"

// UpsertTool inserts or replaces a tool row together with its dependency
// and category rows. The last-updated timestamp is stamped here.
func (s *ToolService) UpsertTool(ctx context.Context, tool *bapanel.Tool) error {
	if err := tool.Validate(); err != nil {
		return err
	}

	tool.LastUpdated = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := upsertToolTx(ctx, tx, tool); err != nil {
		return err
	}

	return tx.Commit()
}

// upsertToolTx writes a single tool inside an existing transaction.
// Dependency and category rows are deleted and reinserted wholesale so the
// stored lists always mirror the given tool exactly.
func upsertToolTx(ctx context.Context, tx *sql.Tx, tool *bapanel.Tool) error {
	var existing string
	err := tx.QueryRowContext(ctx, `
		SELECT tool_name FROM tools WHERE tool_name = ?
	`, tool.Name).Scan(&existing)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx, `
			INSERT INTO tools (tool_name, version, primary_category, short_description, long_description, upstream_url, help_command, last_updated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, tool.Name, tool.Version, tool.PrimaryCategory, tool.ShortDescription,
			tool.LongDescription, tool.UpstreamURL, tool.HelpCommand, tool.LastUpdated)
	case err != nil:
		return err
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE tools
			SET version = ?, primary_category = ?, short_description = ?, long_description = ?, upstream_url = ?, help_command = ?, last_updated = ?
			WHERE tool_name = ?
		`, tool.Version, tool.PrimaryCategory, tool.ShortDescription,
			tool.LongDescription, tool.UpstreamURL, tool.HelpCommand, tool.LastUpdated, tool.Name)
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM dependencies WHERE tool_name = ?`, tool.Name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM tool_categories WHERE tool_name = ?`, tool.Name); err != nil {
		return err
	}

	for _, dep := range tool.Dependencies {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO dependencies (tool_name, dependency_name, is_optional)
			VALUES (?, ?, ?)
		`, tool.Name, dep.Name, boolToInt(dep.Optional)); err != nil {
			return err
		}
	}
	for _, cat := range tool.Categories {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tool_categories (tool_name, category_name)
			VALUES (?, ?)
		`, tool.Name, cat); err != nil {
			return err
		}
	}

	return nil
}

// FindToolByName retrieves a tool with its dependencies and categories.
func (s *ToolService) FindToolByName(ctx context.Context, name string) (*bapanel.Tool, error) {
	var tool bapanel.Tool

	err := s.db.QueryRowContext(ctx, `
		SELECT `+toolColumns+`
		FROM tools t
		WHERE t.tool_name = ?
	`, name).Scan(&tool.Name, &tool.Version, &tool.PrimaryCategory, &tool.ShortDescription,
		&tool.LongDescription, &tool.UpstreamURL, &tool.HelpCommand, &tool.LastUpdated)

	if err == sql.ErrNoRows {
		return nil, bapanel.Errorf(bapanel.ENOTFOUND, "tool %q not found", name)
	}
	if err != nil {
		return nil, err
	}

	if tool.Dependencies, err = s.findDependencies(ctx, name); err != nil {
		return nil, err
	}
	if tool.Categories, err = s.findCategories(ctx, name); err != nil {
		return nil, err
	}

	return &tool, nil
}

func (s *ToolService) findDependencies(ctx context.Context, name string) ([]bapanel.Dependency, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT dependency_name, is_optional
		FROM dependencies
		WHERE tool_name = ?
		ORDER BY is_optional, dependency_name
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deps []bapanel.Dependency
	for rows.Next() {
		var dep bapanel.Dependency
		var optional int
		if err := rows.Scan(&dep.Name, &optional); err != nil {
			return nil, err
		}
		dep.Optional = optional != 0
		deps = append(deps, dep)
	}
	return deps, rows.Err()
}

func (s *ToolService) findCategories(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_name
		FROM tool_categories
		WHERE tool_name = ?
		ORDER BY category_name
	`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// FindTools retrieves tools matching the filter, ordered by name.
func (s *ToolService) FindTools(ctx context.Context, filter bapanel.ToolFilter) ([]*bapanel.Tool, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT DISTINCT " + toolColumns + " FROM tools t")
	appendFilter(&query, &args, filter)
	query.WriteString(" ORDER BY t.tool_name")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tools []*bapanel.Tool
	for rows.Next() {
		var tool bapanel.Tool
		if err := rows.Scan(&tool.Name, &tool.Version, &tool.PrimaryCategory, &tool.ShortDescription,
			&tool.LongDescription, &tool.UpstreamURL, &tool.HelpCommand, &tool.LastUpdated); err != nil {
			return nil, err
		}
		tools = append(tools, &tool)
	}
	return tools, rows.Err()
}

// CountTools returns the number of tools matching the filter.
func (s *ToolService) CountTools(ctx context.Context, filter bapanel.ToolFilter) (int, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT COUNT(DISTINCT t.tool_name) FROM tools t")
	appendFilter(&query, &args, filter)

	var count int
	if err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// appendFilter appends the JOIN and WHERE clauses shared by FindTools and
// CountTools.
func appendFilter(query *strings.Builder, args *[]any, filter bapanel.ToolFilter) {
	if filter.Category != nil {
		query.WriteString(" JOIN tool_categories tc ON t.tool_name = tc.tool_name")
	}

	query.WriteString(" WHERE 1=1")

	if filter.Category != nil {
		query.WriteString(" AND tc.category_name = ?")
		*args = append(*args, *filter.Category)
	}
	if filter.Search != nil {
		query.WriteString(" AND (t.tool_name LIKE ? OR t.short_description LIKE ? OR t.long_description LIKE ?)")
		term := "%" + *filter.Search + "%"
		*args = append(*args, term, term, term)
	}
	if len(filter.Names) > 0 {
		query.WriteString(" AND t.tool_name IN (" + placeholders(len(filter.Names)) + ")")
		for _, name := range filter.Names {
			*args = append(*args, name)
		}
	}
}

// ListCategories returns all categories with their tool counts.
func (s *ToolService) ListCategories(ctx context.Context) ([]bapanel.CategoryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category_name, COUNT(tool_name)
		FROM tool_categories
		GROUP BY category_name
		ORDER BY category_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cats []bapanel.CategoryCount
	for rows.Next() {
		var cat bapanel.CategoryCount
		if err := rows.Scan(&cat.Name, &cat.Tools); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// FindRelatedTools returns up to five tools ranked by the number of
// categories they share with the named tool.
func (s *ToolService) FindRelatedTools(ctx context.Context, name string) ([]bapanel.RelatedTool, error) {
	cats, err := s.findCategories(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(cats) == 0 {
		return nil, nil
	}

	args := make([]any, 0, len(cats)+1)
	for _, cat := range cats {
		args = append(args, cat)
	}
	args = append(args, name)

	rows, err := s.db.QueryContext(ctx, `
		SELECT tc.tool_name, t.short_description, COUNT(tc.category_name) AS shared
		FROM tool_categories tc
		JOIN tools t ON tc.tool_name = t.tool_name
		WHERE tc.category_name IN (`+placeholders(len(cats))+`) AND tc.tool_name != ?
		GROUP BY tc.tool_name
		ORDER BY shared DESC
		LIMIT 5
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var related []bapanel.RelatedTool
	for rows.Next() {
		var r bapanel.RelatedTool
		if err := rows.Scan(&r.Name, &r.ShortDescription, &r.Shared); err != nil {
			return nil, err
		}
		related = append(related, r)
	}
	return related, rows.Err()
}

// RandomTool retrieves a uniformly random tool with full details.
func (s *ToolService) RandomTool(ctx context.Context) (*bapanel.Tool, error) {
	var name string

	err := s.db.QueryRowContext(ctx, `
		SELECT tool_name FROM tools ORDER BY RANDOM() LIMIT 1
	`).Scan(&name)

	if err == sql.ErrNoRows {
		return nil, bapanel.Errorf(bapanel.ENOTFOUND, "no tools in store")
	}
	if err != nil {
		return nil, err
	}

	return s.FindToolByName(ctx, name)
}

// Validate inspects the store and returns summary statistics.
func (s *ToolService) Validate(ctx context.Context) (*bapanel.StoreStats, error) {
	stats := &bapanel.StoreStats{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var table string
		if err := rows.Scan(&table); err != nil {
			return nil, err
		}
		stats.Tables = append(stats.Tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tools`).Scan(&stats.Tools); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT category_name) FROM tool_categories`).Scan(&stats.Categories); err != nil {
		return nil, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM dependencies`).Scan(&stats.Dependencies); err != nil {
		return nil, err
	}

	samples, err := s.db.QueryContext(ctx, `
		SELECT `+toolColumns+` FROM tools t ORDER BY RANDOM() LIMIT 3
	`)
	if err != nil {
		return nil, err
	}
	defer samples.Close()

	for samples.Next() {
		var tool bapanel.Tool
		if err := samples.Scan(&tool.Name, &tool.Version, &tool.PrimaryCategory, &tool.ShortDescription,
			&tool.LongDescription, &tool.UpstreamURL, &tool.HelpCommand, &tool.LastUpdated); err != nil {
			return nil, err
		}
		stats.Samples = append(stats.Samples, &tool)
	}
	return stats, samples.Err()
}
