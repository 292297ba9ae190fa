package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisCache(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func TestRedisCache_SetGet(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "drinks:coffee", []byte(`[{"id":"d1"}]`)))

	got, err := cache.Get(ctx, "drinks:coffee")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"d1"}]`), got)
}

func TestRedisCache_MissReturnsSentinel(t *testing.T) {
	cache, _, cleanup := setupTestCache(t)
	defer cleanup()

	_, err := cache.Get(context.Background(), "drinks:tea")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_EntriesExpire(t *testing.T) {
	cache, mr, cleanup := setupTestCache(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "categories", []byte(`[]`)))

	// Base TTL is 15m plus up to 5m jitter
	mr.FastForward(21 * time.Minute)

	_, err := cache.Get(ctx, "categories")
	assert.ErrorIs(t, err, ErrCacheMiss)
}
