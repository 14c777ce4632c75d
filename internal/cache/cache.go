package cache

import (
	"context"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/pkg/errors"
)

// CatalogCache keeps loaded catalog snapshots. The key names one concrete
// catalog: its source and location.
type CatalogCache interface {
	Get(ctx context.Context, key string) ([]domain.Item, error)
	Set(ctx context.Context, key string, items []domain.Item) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")

// Noop is used when no cache is configured. Every lookup misses.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]domain.Item, error) { return nil, ErrCacheMiss }

func (Noop) Set(context.Context, string, []domain.Item) error { return nil }

func (Noop) Delete(context.Context, string) error { return nil }
