package repository

import (
	"context"

	"github.com/DanielFadlon/simple-store/internal/domain"
)

// CatalogRepository loads the store catalog once at startup.
// Consumers define this interface, not the storage implementations.
type CatalogRepository interface {
	LoadItems(ctx context.Context) ([]domain.Item, error)
	Close() error
}

// CatalogWriter is implemented by repositories that can be seeded from
// another catalog source.
type CatalogWriter interface {
	SeedItems(ctx context.Context, items []domain.Item) error
}
