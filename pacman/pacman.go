// Package pacman provides a bapanel.PackageIndex backed by the local
// pacman binary.
package pacman

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	bapanel "github.com/b0id/blackarch-panel"
)

// Runner executes a command and returns its standard output.
// It exists so tests can substitute canned pacman output.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// execRunner runs the command for real.
func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s %s: %s", name, strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

// Ensure Index implements bapanel.PackageIndex at compile time.
var _ bapanel.PackageIndex = (*Index)(nil)

// Index queries the local package database through pacman.
type Index struct {
	runner Runner
	prefix string
}

// Option configures an Index.
type Option func(*Index)

// WithRunner substitutes the command runner. Used in tests.
func WithRunner(r Runner) Option {
	return func(i *Index) {
		i.runner = r
	}
}

// WithPrefix sets the package group prefix that marks repository
// membership. Defaults to the BlackArch category prefix.
func WithPrefix(prefix string) Option {
	return func(i *Index) {
		i.prefix = prefix
	}
}

// NewIndex creates a new pacman-backed Index.
func NewIndex(opts ...Option) *Index {
	i := &Index{
		runner: execRunner,
		prefix: bapanel.CategoryPrefix,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// ListTools returns the names of all packages belonging to a prefixed
// group, sorted and deduplicated.
func (i *Index) ListTools(ctx context.Context) ([]string, error) {
	out, err := i.runner(ctx, "pacman", "-Sgg")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		// Each line is "<group> <package>".
		fields := strings.Fields(line)
		if len(fields) != 2 || !strings.HasPrefix(fields[0], i.prefix) {
			continue
		}
		seen[fields[1]] = true
	}

	tools := make([]string, 0, len(seen))
	for name := range seen {
		tools = append(tools, name)
	}
	sort.Strings(tools)
	return tools, nil
}

// ListCategories returns the names of all prefixed package groups.
func (i *Index) ListCategories(ctx context.Context) ([]string, error) {
	out, err := i.runner(ctx, "pacman", "-Sg")
	if err != nil {
		return nil, err
	}

	var cats []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if strings.HasPrefix(name, i.prefix) {
			cats = append(cats, name)
		}
	}
	sort.Strings(cats)
	return cats, nil
}

// PackageInfo retrieves and parses the metadata for a single package.
func (i *Index) PackageInfo(ctx context.Context, name string) (*bapanel.PackageInfo, error) {
	out, err := i.runner(ctx, "pacman", "-Si", name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out) == "" {
		return nil, bapanel.Errorf(bapanel.ENOTFOUND, "package %q not found", name)
	}
	return ParseInfo(name, out), nil
}
