package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisTimeout bounds every redis command, Load and Save are synchronous
const redisTimeout = 3 * time.Second

type redisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend creates a backend that stores each key as one redis string.
// prefix is prepended to every key (may be empty).
func NewRedisBackend(addr string, db int, prefix string) IBackend {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &redisBackend{client: rdb, prefix: prefix}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache.IBackend)
// --------------------------------------------------------------------------

func (b *redisBackend) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	val, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (b *redisBackend) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if err := b.client.Set(ctx, b.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (b *redisBackend) Close() error {
	return b.client.Close()
}

func (b *redisBackend) Name() string {
	return "redis"
}
