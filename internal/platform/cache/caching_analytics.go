// Package cache provides caching decorators for the analytics usecase.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"dataset_analytics/internal/feature/analytics/domain/entity"
)

// Computer is the part of the analytics usecase the cache decorates.
type Computer interface {
	Compute(ctx context.Context, metric entity.Metric) (entity.ResultSet, error)
	Fingerprint() string
}

// CachingAnalytics decorates a Computer with Redis caching.
// Results are keyed by dataset fingerprint, so a changed dataset never reads
// values computed from an older one.
type CachingAnalytics struct {
	inner     Computer
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingAnalytics decorates inner with Redis caching.
// If ttl is 0, it defaults to 24 hours. If namespace is empty, it uses "analytics".
func NewCachingAnalytics(rdb *redis.Client, ttl time.Duration, inner Computer, namespace string) *CachingAnalytics {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if namespace == "" {
		namespace = "analytics"
	}
	return &CachingAnalytics{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Fingerprint delegates to the decorated Computer.
func (c *CachingAnalytics) Fingerprint() string {
	return c.inner.Fingerprint()
}

// Compute returns the cached ResultSet for metric, computing and storing it on a miss.
func (c *CachingAnalytics) Compute(ctx context.Context, metric entity.Metric) (entity.ResultSet, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Compute(ctx, metric)
	}

	key := c.cacheKey(metric)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.ResultSet
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to computation
	out, err := c.inner.Compute(ctx, metric)
	if err != nil {
		return entity.ResultSet{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("failed to cache analytics result", "key", key, "error", err)
		}
	}

	return out, nil
}

// cacheKey generates a cache key for a metric of the current dataset.
func (c *CachingAnalytics) cacheKey(metric entity.Metric) string {
	return fmt.Sprintf("%s:%s:%s",
		c.namespace,
		safe(c.inner.Fingerprint()),
		safe(string(metric)),
	)
}

// InvalidateSymbol deletes every cached result computed from a dataset of symbol.
func InvalidateSymbol(ctx context.Context, rdb *redis.Client, namespace, symbol string) error {
	if rdb == nil {
		return nil
	}
	if namespace == "" {
		namespace = "analytics"
	}
	return deleteByPattern(ctx, rdb, fmt.Sprintf("%s:%s-*", namespace, safe(symbol)))
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func deleteByPattern(ctx context.Context, rdb *redis.Client, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
