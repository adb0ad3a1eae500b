// internal/storage/cache/cache.go
package cache

import (
	"cardwise/internal/domain"
	"cardwise/internal/metrics"
	"cardwise/internal/storage"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const DefaultKey = "cardwise:catalog:v1"

// CatalogCache serves the catalog from Redis and falls back to the wrapped
// source on a miss. Redis failures degrade to the source, they never fail a load.
type CatalogCache struct {
	rdb    *redis.Client
	source storage.CatalogSource
	key    string
	ttl    time.Duration
}

func NewCatalogCache(rdb *redis.Client, source storage.CatalogSource, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, source: source, key: DefaultKey, ttl: ttl}
}

func (c *CatalogCache) LoadCatalog(ctx context.Context) (*domain.Catalog, error) {
	raw, err := c.rdb.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var data domain.Catalog
		decodeErr := json.Unmarshal(raw, &data)
		if decodeErr == nil {
			metrics.CatalogCacheLookups.WithLabelValues("hit").Inc()
			return &data, nil
		}
		metrics.CatalogCacheLookups.WithLabelValues("error").Inc()
		slog.Warn("Catalog cache entry is corrupt, reloading", "error", decodeErr)
	case errors.Is(err, redis.Nil):
		metrics.CatalogCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.CatalogCacheLookups.WithLabelValues("error").Inc()
		slog.Warn("Catalog cache unavailable", "error", err)
	}

	data, err := c.source.LoadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode catalog for cache: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key, payload, c.ttl).Err(); err != nil {
		slog.Warn("Failed to store catalog in cache", "error", err)
	}
	return data, nil
}

// Invalidate drops the cached copy so the next load goes to the source.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}
