// internal/app/app.go
package app

import (
	"cardwise/internal/catalog"
	"cardwise/internal/config"
	"cardwise/internal/storage"
	"cardwise/internal/storage/cache"
	"cardwise/internal/storage/postgres"
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const (
	SourcePostgres = "postgres"
	SourceSeed     = "seed"
)

// AdminStore is nil when the catalog is not backed by Postgres.
type AdminStore interface {
	storage.CardStorage
	storage.MilestoneStorage
}

// Deps: общие зависимости бинарников
type Deps struct {
	Catalog *catalog.Catalog
	Store   AdminStore
	Cache   *cache.CatalogCache

	pool *pgxpool.Pool
	rdb  *redis.Client
}

// Open builds the catalog source chain (Postgres or seed, optionally behind
// Redis), applies the milestone overlay file and loads the first snapshot.
func Open(ctx context.Context, cfg config.Config) (*Deps, error) {
	overlay, err := catalog.LoadProgramsFile(cfg.MilestonesFile)
	if err != nil {
		return nil, err
	}

	d := &Deps{}
	var source storage.CatalogSource

	switch cfg.CatalogSource {
	case SourceSeed:
		source = catalog.NewSeedSource()
	case SourcePostgres, "":
		pool, err := pgxpool.New(ctx, cfg.DBConn)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		slog.Info("✅ Подключились к PostgreSQL")
		d.pool = pool

		store := postgres.NewStorage(pool)
		d.Store = store
		source = store
	default:
		return nil, fmt.Errorf("unknown catalog source %q (want %s or %s)", cfg.CatalogSource, SourcePostgres, SourceSeed)
	}

	if cfg.RedisAddr != "" {
		d.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		// без Redis работаем напрямую с источником
		if err := d.rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("Redis unavailable, cache will degrade to the source", "error", err)
		}
		d.Cache = cache.NewCatalogCache(d.rdb, source, cfg.CacheTTL)
		source = d.Cache
	}

	d.Catalog = catalog.New(source, overlay)
	if _, err := d.Catalog.Refresh(ctx); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// Invalidator returns the cache as an untyped nil when there is none.
func (d *Deps) Invalidator() interface {
	Invalidate(ctx context.Context) error
} {
	if d.Cache == nil {
		return nil
	}
	return d.Cache
}

func (d *Deps) Close() {
	if d.rdb != nil {
		_ = d.rdb.Close()
	}
	if d.pool != nil {
		d.pool.Close()
	}
}
