package service

import (
	"context"
	"time"

	"github.com/DanielFadlon/simple-store/internal/cache"
	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/DanielFadlon/simple-store/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CatalogService loads the catalog through the cache. key names the
// concrete catalog the repository reads, see config.CatalogKey.
type CatalogService struct {
	repo  repository.CatalogRepository
	cache cache.CatalogCache
	key   string
	log   *zap.Logger
	sfg    singleflight.Group // one repository read per burst of loads
}

func NewCatalogService(repo repository.CatalogRepository, c cache.CatalogCache, key string, log *zap.Logger) *CatalogService {
	if c == nil {
		c = cache.Noop{}
	}
	return &CatalogService{
		repo:  repo,
		cache: c,
		key:   key,
		log:   log,
	}
}

// Load returns the catalog, reading the repository only on a cache miss.
func (s *CatalogService) Load(ctx context.Context) ([]domain.Item, error) {
	v, err, _ := s.sfg.Do(s.key, func() (interface{}, error) {
		items, err := s.cache.Get(ctx, s.key)
		if err == nil {
			s.log.Debug("catalog served from cache", zap.String("catalog", s.key), zap.Int("items", len(items)))
			return items, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.log.Warn("catalog cache get failed", zap.String("catalog", s.key), zap.Error(err))
		}

		items, err = s.repo.LoadItems(ctx)
		if err != nil {
			return nil, errors.Wrapf(err, "load catalog %s", s.key)
		}
		s.log.Info("catalog loaded", zap.String("catalog", s.key), zap.Int("items", len(items)))

		snapshot := domain.CloneItems(items)
		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(setCtx, s.key, snapshot); err != nil {
				s.log.Warn("catalog cache set failed", zap.String("catalog", s.key), zap.Error(err))
			}
		}()

		return items, nil
	})
	if err != nil {
		return nil, err
	}

	return domain.CloneItems(v.([]domain.Item)), nil
}

// Invalidate drops the cached snapshot so the next Load hits the repository.
func (s *CatalogService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, s.key); err != nil {
		s.log.Warn("catalog cache invalidate failed", zap.String("catalog", s.key), zap.Error(err))
	}
}
