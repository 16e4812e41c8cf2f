package mock

import (
	"context"

	bapanel "github.com/b0id/blackarch-panel"
)

var _ bapanel.ToolService = (*ToolService)(nil)

// ToolService is a mock implementation of bapanel.ToolService.
type ToolService struct {
	UpsertToolFn       func(ctx context.Context, tool *bapanel.Tool) error
	FindToolByNameFn   func(ctx context.Context, name string) (*bapanel.Tool, error)
	FindToolsFn        func(ctx context.Context, filter bapanel.ToolFilter) ([]*bapanel.Tool, error)
	CountToolsFn       func(ctx context.Context, filter bapanel.ToolFilter) (int, error)
	ListCategoriesFn   func(ctx context.Context) ([]bapanel.CategoryCount, error)
	FindRelatedToolsFn func(ctx context.Context, name string) ([]bapanel.RelatedTool, error)
	RandomToolFn       func(ctx context.Context) (*bapanel.Tool, error)
	ImportSnapshotFn   func(ctx context.Context, snap *bapanel.Snapshot) (int, error)
	ValidateFn         func(ctx context.Context) (*bapanel.StoreStats, error)
}

func (s *ToolService) UpsertTool(ctx context.Context, tool *bapanel.Tool) error {
	return s.UpsertToolFn(ctx, tool)
}

func (s *ToolService) FindToolByName(ctx context.Context, name string) (*bapanel.Tool, error) {
	return s.FindToolByNameFn(ctx, name)
}

func (s *ToolService) FindTools(ctx context.Context, filter bapanel.ToolFilter) ([]*bapanel.Tool, error) {
	return s.FindToolsFn(ctx, filter)
}

func (s *ToolService) CountTools(ctx context.Context, filter bapanel.ToolFilter) (int, error) {
	return s.CountToolsFn(ctx, filter)
}

func (s *ToolService) ListCategories(ctx context.Context) ([]bapanel.CategoryCount, error) {
	return s.ListCategoriesFn(ctx)
}

func (s *ToolService) FindRelatedTools(ctx context.Context, name string) ([]bapanel.RelatedTool, error) {
	return s.FindRelatedToolsFn(ctx, name)
}

func (s *ToolService) RandomTool(ctx context.Context) (*bapanel.Tool, error) {
	return s.RandomToolFn(ctx)
}

func (s *ToolService) ImportSnapshot(ctx context.Context, snap *bapanel.Snapshot) (int, error) {
	return s.ImportSnapshotFn(ctx, snap)
}

func (s *ToolService) Validate(ctx context.Context) (*bapanel.StoreStats, error) {
	return s.ValidateFn(ctx)
}
