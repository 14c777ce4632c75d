package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DanielFadlon/simple-store/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisCache instance
func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

var testItems = []domain.Item{
	{Name: "Milk", Price: 5, Hashtags: []string{"dairy", "fresh"}, Description: "1L"},
	{Name: "Bread", Price: 8, Hashtags: []string{"bakery"}, Description: "rye"},
}

func TestGet_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)

	data, err := json.Marshal(snapshot{Items: testItems, CachedAt: time.Now()})
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey("yaml"), string(data)))

	items, err := cache.Get(context.Background(), "yaml")
	require.NoError(t, err)
	assert.Equal(t, testItems, items)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	items, err := cache.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, items)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(cacheKey("yaml"), `{"items": [`))

	_, err := cache.Get(context.Background(), "yaml")
	require.ErrorContains(t, err, "unmarshal catalog failed")
}

func TestGet_InvalidItem(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(cacheKey("sqlite"), `{"items":[{"name":"Milk","price":5},{"name":"Bread","price":-8}]}`))

	items, err := cache.Get(context.Background(), "sqlite")
	assert.ErrorIs(t, err, domain.ErrNegativePrice)
	assert.ErrorContains(t, err, "cached item 1 (Bread)")
	assert.Nil(t, items)
}

func TestGet_DoesNotAliasSnapshot(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "sqlite", testItems))

	items, err := cache.Get(ctx, "sqlite")
	require.NoError(t, err)
	items[0].Hashtags[0] = "changed"

	again, err := cache.Get(ctx, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, "dairy", again[0].Hashtags[0])
}

func TestSet_RoundTrip(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "sqlite", testItems))
	assert.True(t, mr.Exists(cacheKey("sqlite")))

	items, err := cache.Get(ctx, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, testItems, items)
}

func TestSet_WithTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)

	require.NoError(t, cache.Set(context.Background(), "yaml", testItems))

	ttl := mr.TTL(cacheKey("yaml"))
	assert.GreaterOrEqual(t, ttl, baseTTL, "TTL should be at least base TTL")
	assert.Less(t, ttl, baseTTL+maxJitter*time.Minute, "TTL should be below base + max jitter")
}

func TestSet_ExpiresAfterTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "yaml", testItems))
	mr.FastForward(baseTTL + maxJitter*time.Minute)

	_, err := cache.Get(ctx, "yaml")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDelete_Success(t *testing.T) {
	cache, mr := setupTestRedis(t)
	require.NoError(t, mr.Set(cacheKey("yaml"), "{}"))

	require.NoError(t, cache.Delete(context.Background(), "yaml"))
	assert.False(t, mr.Exists(cacheKey("yaml")))
}

func TestDelete_NonExistentKey(t *testing.T) {
	cache, _ := setupTestRedis(t)

	assert.NoError(t, cache.Delete(context.Background(), "nonexistent"))
}

func TestNoop(t *testing.T) {
	var c CatalogCache = Noop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "yaml", testItems))
	_, err := c.Get(ctx, "yaml")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, c.Delete(ctx, "yaml"))
}

func TestCacheKey_Format(t *testing.T) {
	assert.Equal(t, "catalog:mongo:0f6e", cacheKey("mongo:0f6e"))
}
