// Package sqlite provides the SQLite-based tool store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention, so a running
	// loader and a browser can share the file.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode for file-based databases; not supported for in-memory ones.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
// References are declarative only; the foreign_keys pragma stays off and
// dependency and category rows are replaced wholesale per tool instead.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tools (
			tool_name TEXT PRIMARY KEY,
			version TEXT NOT NULL DEFAULT '',
			primary_category TEXT NOT NULL DEFAULT '',
			short_description TEXT NOT NULL DEFAULT '',
			long_description TEXT NOT NULL DEFAULT '',
			upstream_url TEXT NOT NULL DEFAULT '',
			help_command TEXT NOT NULL DEFAULT '',
			last_updated INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS dependencies (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tool_name TEXT NOT NULL REFERENCES tools(tool_name),
			dependency_name TEXT NOT NULL,
			is_optional INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS tool_categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			tool_name TEXT NOT NULL REFERENCES tools(tool_name),
			category_name TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tools_primary_category ON tools(primary_category);
		CREATE INDEX IF NOT EXISTS idx_dependencies_tool_name ON dependencies(tool_name);
		CREATE INDEX IF NOT EXISTS idx_tool_categories_tool_name ON tool_categories(tool_name);
		CREATE INDEX IF NOT EXISTS idx_tool_categories_category_name ON tool_categories(category_name);
	`

	_, err := db.db.Exec(schema)
	return err
}
