package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	bapanel "github.com/b0id/blackarch-panel"
	"github.com/b0id/blackarch-panel/lipgloss"
	"github.com/b0id/blackarch-panel/shell"
	"github.com/b0id/blackarch-panel/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ToolService bapanel.ToolService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("bapanel"),
		kong.Description("Browse and search the BlackArch tool collection."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	// The browser never creates the store. An absent file means the
	// loader has not run yet, which deserves a hint rather than an
	// empty database.
	if m.DBPath != ":memory:" {
		if _, err := os.Stat(m.DBPath); err != nil {
			fmt.Fprintln(stderr, "Hint: run bapanel-etl to build the tool database first")
			return fmt.Errorf("database not found at %q", m.DBPath)
		}
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintln(stderr, "Hint: set BAPANEL_DB to use a different database path")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.ToolService = sqlite.NewToolService(m.DB)
	deps.Tools = m.ToolService
	deps.Scripts = shell.NewWriter(".")
	deps.Renderer = lipgloss.NewRenderer()

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("BAPANEL_DB"); path != "" {
		return path
	}
	return "blackarch_tools.db"
}
