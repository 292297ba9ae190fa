package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisGateway stores slots in Redis. Values are written without a TTL:
// this is durable state, not a cache.
type RedisGateway struct {
	client *redis.Client
}

func NewRedisGateway(client *redis.Client) *RedisGateway {
	return &RedisGateway{client: client}
}

func (g *RedisGateway) Save(ctx context.Context, slot Slot, value []byte) error {
	if err := g.client.Set(ctx, slotKey(slot), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (g *RedisGateway) Load(ctx context.Context, slot Slot) ([]byte, error) {
	data, err := g.client.Get(ctx, slotKey(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return data, nil
}

func (g *RedisGateway) Close() error {
	return g.client.Close()
}

func slotKey(slot Slot) string {
	return fmt.Sprintf("coffee:slot:%s", slot)
}
