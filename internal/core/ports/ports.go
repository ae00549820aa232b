package ports

import (
	"context"

	"littlelemon/internal/data/menu"
)

// MenuRepository is the read/write surface of the menu table.
type MenuRepository interface {
	EnsureSchema(ctx context.Context) error
	BulkInsert(ctx context.Context, items []menu.NewItem) ([]int64, error)
	GetAll(ctx context.Context) ([]menu.Item, error)
	Filter(ctx context.Context, f menu.Filter) ([]menu.Item, error)
	Count(ctx context.Context) (int, error)
	Categories(ctx context.Context) ([]string, error)
}

// KeyValueStore persists small string blobs under well-known keys.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// MenuService is what driving adapters (terminal UI, HTTP API) call.
type MenuService interface {
	List(ctx context.Context, f menu.Filter) ([]menu.Item, error)
	Categories(ctx context.Context) ([]string, error)
}
