// Package cache stores short-lived JSON snapshots, such as dashboard
// aggregates, so hot read paths do not recompute them on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores JSON-encoded values under string keys.
type Cache interface {
	// Get decodes the value at key into dst. It reports false on a miss.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores v at key for ttl.
	Set(ctx context.Context, key string, v any, ttl time.Duration) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// KeyPrefix namespaces every key written by this service.
const KeyPrefix = "fireaudit:"

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisCache wraps an existing Redis client.
func NewRedisCache(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

// Connect parses a redis:// URL, opens a client and verifies it with PING.
func Connect(ctx context.Context, url string, logger *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisCache(client, logger), nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	val, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, KeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}

	c.logger.Debug("cache set", "key", key, "ttl", ttl, "bytes", len(data))
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = KeyPrefix + k
	}

	if err := c.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("delete %v: %w", keys, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Nop is a Cache that never stores anything. It is used when REDIS_URL is unset.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Nop) Delete(context.Context, ...string) error               { return nil }
