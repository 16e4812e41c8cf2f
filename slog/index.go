// Package slog provides logging decorators for the pipeline services.
package slog

import (
	"context"
	"log/slog"
	"time"

	bapanel "github.com/b0id/blackarch-panel"
)

// Ensure LoggingPackageIndex implements bapanel.PackageIndex.
var _ bapanel.PackageIndex = (*LoggingPackageIndex)(nil)

// LoggingPackageIndex wraps a PackageIndex with timing and error logging.
type LoggingPackageIndex struct {
	next   bapanel.PackageIndex
	logger *slog.Logger
}

// NewLoggingPackageIndex creates a new LoggingPackageIndex.
func NewLoggingPackageIndex(next bapanel.PackageIndex, logger *slog.Logger) *LoggingPackageIndex {
	return &LoggingPackageIndex{next: next, logger: logger}
}

// ListTools delegates to the wrapped index and logs the result size.
func (i *LoggingPackageIndex) ListTools(ctx context.Context) ([]string, error) {
	begin := time.Now()
	tools, err := i.next.ListTools(ctx)
	if err != nil {
		i.logger.Error("list tools", "error", err, "duration", time.Since(begin))
		return nil, err
	}
	i.logger.Info("list tools", "count", len(tools), "duration", time.Since(begin))
	return tools, nil
}

// ListCategories delegates to the wrapped index and logs the result size.
func (i *LoggingPackageIndex) ListCategories(ctx context.Context) ([]string, error) {
	begin := time.Now()
	categories, err := i.next.ListCategories(ctx)
	if err != nil {
		i.logger.Error("list categories", "error", err, "duration", time.Since(begin))
		return nil, err
	}
	i.logger.Info("list categories", "count", len(categories), "duration", time.Since(begin))
	return categories, nil
}

// PackageInfo delegates to the wrapped index, logging failures only.
// Successful lookups are too frequent to log at info level.
func (i *LoggingPackageIndex) PackageInfo(ctx context.Context, name string) (*bapanel.PackageInfo, error) {
	info, err := i.next.PackageInfo(ctx, name)
	if err != nil {
		i.logger.Warn("package info", "tool", name, "error", err)
		return nil, err
	}
	i.logger.Debug("package info", "tool", name)
	return info, nil
}
