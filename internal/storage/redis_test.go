package storage

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and returns a RedisGateway instance
func setupTestRedis(t *testing.T) (*RedisGateway, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	gateway := NewRedisGateway(client)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return gateway, mr, cleanup
}

func TestRedisGateway_SaveLoadRoundTrip(t *testing.T) {
	gateway, _, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	payload := []byte(`[{"name":"Latte","price":4.5,"quantity":2}]`)

	require.NoError(t, gateway.Save(ctx, SlotCartItems, payload))

	got, err := gateway.Load(ctx, SlotCartItems)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestRedisGateway_LoadAbsentSlot(t *testing.T) {
	gateway, _, cleanup := setupTestRedis(t)
	defer cleanup()

	_, err := gateway.Load(context.Background(), SlotPurchaseHistory)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRedisGateway_ValuesHaveNoTTL(t *testing.T) {
	gateway, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, gateway.Save(ctx, SlotCartItems, []byte(`[]`)))

	// Durable state must survive arbitrary clock advance
	mr.FastForward(365 * 24 * time.Hour)

	got, err := gateway.Load(ctx, SlotCartItems)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
}

func TestRedisGateway_ServerDown(t *testing.T) {
	gateway, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	mr.Close()

	err := gateway.Save(context.Background(), SlotCartItems, []byte(`[]`))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotNotFound)
}
