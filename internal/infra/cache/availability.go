package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the full cache surface. Both the Redis-backed cache and the noop
// fallback implement it.
type Store interface {
	Get(ctx context.Context, resource, key string) ([]byte, bool)
	Set(ctx context.Context, resource, key string, payload []byte)
	Invalidate(ctx context.Context, resource string)
}

// AvailabilityCache is an advisory read-through cache for rendered free-slot
// listings. Entries are keyed under a per-resource generation counter;
// invalidation bumps the counter so stale entries simply age out. A cache
// failure is never an error: the caller recomputes from storage.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func (c *AvailabilityCache) Get(ctx context.Context, resource, key string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, c.entryKey(ctx, resource, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("availability cache read failed", "error", err.Error())
		}
		return nil, false
	}
	return payload, true
}

func (c *AvailabilityCache) Set(ctx context.Context, resource, key string, payload []byte) {
	if err := c.client.Set(ctx, c.entryKey(ctx, resource, key), payload, c.ttl).Err(); err != nil {
		slog.Warn("availability cache write failed", "error", err.Error())
	}
}

// Invalidate drops every cached listing for the resource by advancing its
// generation counter.
func (c *AvailabilityCache) Invalidate(ctx context.Context, resource string) {
	if err := c.client.Incr(ctx, generationKey(resource)).Err(); err != nil {
		slog.Warn("availability cache invalidation failed", "resource", resource, "error", err.Error())
	}
}

func (c *AvailabilityCache) entryKey(ctx context.Context, resource, key string) string {
	gen, err := c.client.Get(ctx, generationKey(resource)).Int64()
	if err != nil && err != redis.Nil {
		gen = 0
	}
	return fmt.Sprintf("avail:%s:%d:%s", resource, gen, key)
}

func generationKey(resource string) string {
	return "avail:gen:" + resource
}
