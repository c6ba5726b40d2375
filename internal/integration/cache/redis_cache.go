// Package cache implements the Sync Gateway fallback cache on Redis.
package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
)

// redisCache implements the adapter.SnapshotCache interface.
type redisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache creates a snapshot cache. Keys are stored as prefix+key and never expire.
func NewRedisCache(client *redis.Client, prefix string) adapter.SnapshotCache {
	return &redisCache{
		client: client,
		prefix: prefix,
	}
}

// Put stores value under key.
func (c *redisCache) Put(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, c.prefix+key, value, 0).Err(); err != nil {
		return domainerror.NewSyncError(
			domainerror.ErrCodeCacheWrite,
			"cache put "+key,
			errors.Join(domainerror.ErrCacheWrite, err),
		)
	}
	return nil
}

// Get returns the value stored under key.
func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.NewSyncError(
				domainerror.ErrCodeCacheMiss,
				"cache miss "+key,
				domainerror.ErrCacheMiss,
			)
		}
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return value, nil
}

// Ping reports whether Redis is reachable.
func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
