package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemkits/backend/internal/application/report"
)

// RedisReportCache stores serialized report payloads in Redis with a TTL.
// Suitable for multi-instance deployments where report reads must share a
// cache.
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache creates a RedisReportCache on an existing client
func NewRedisReportCache(client *redis.Client) *RedisReportCache {
	return &RedisReportCache{client: client}
}

// Get returns the cached payload for the key, if present
func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache key %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores the payload under the key with a TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key %s: %w", key, err)
	}
	return nil
}

// DeletePrefix removes every key under the prefix. SCAN is used instead of
// KEYS so a large keyspace does not block the server.
func (c *RedisReportCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache prefix %s: %w", prefix, err)
	}
	return nil
}

var _ report.ReportCache = (*RedisReportCache)(nil)
