package mock

import (
	"context"

	bapanel "github.com/b0id/blackarch-panel"
)

var _ bapanel.PackageIndex = (*PackageIndex)(nil)

// PackageIndex is a mock implementation of bapanel.PackageIndex.
type PackageIndex struct {
	ListToolsFn      func(ctx context.Context) ([]string, error)
	ListCategoriesFn func(ctx context.Context) ([]string, error)
	PackageInfoFn    func(ctx context.Context, name string) (*bapanel.PackageInfo, error)
}

func (i *PackageIndex) ListTools(ctx context.Context) ([]string, error) {
	return i.ListToolsFn(ctx)
}

func (i *PackageIndex) ListCategories(ctx context.Context) ([]string, error) {
	return i.ListCategoriesFn(ctx)
}

func (i *PackageIndex) PackageInfo(ctx context.Context, name string) (*bapanel.PackageInfo, error) {
	return i.PackageInfoFn(ctx, name)
}
