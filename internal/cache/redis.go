package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	baseTTL   = 15 * time.Minute
	maxJitter = 5 // minutes
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

type snapshot struct {
	Items    []domain.Item `json:"items"`
	CachedAt time.Time     `json:"cached_at"`
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]domain.Item, error) {
	data, err := r.client.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis get failed")
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(err, "unmarshal catalog failed")
	}

	// the snapshot came from outside the process; hold it to the same
	// rules the repositories apply
	items := make([]domain.Item, 0, len(snap.Items))
	for i, raw := range snap.Items {
		item, err := domain.NewItem(raw.Name, raw.Price, raw.Hashtags, raw.Description)
		if err != nil {
			return nil, errors.Wrapf(err, "cached item %d (%s)", i, raw.Name)
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, items []domain.Item) error {
	data, err := json.Marshal(snapshot{Items: items, CachedAt: time.Now().UTC()})
	if err != nil {
		return errors.Wrap(err, "marshal catalog failed")
	}

	// jitter keeps replicas from reloading at the same moment
	jitter := time.Duration(rand.IntN(maxJitter)) * time.Minute
	if err := r.client.Set(ctx, cacheKey(key), data, r.baseTTL+jitter).Err(); err != nil {
		return errors.Wrap(err, "redis set failed")
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, cacheKey(key)).Err(); err != nil {
		return errors.Wrap(err, "redis delete failed")
	}
	return nil
}

func cacheKey(key string) string {
	return fmt.Sprintf("catalog:%s", key)
}
