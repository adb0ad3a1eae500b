// cmd/migrate/main.go
package main

import (
	"cardwise/internal/catalog"
	"cardwise/internal/config"
	"cardwise/internal/storage/postgres"
	"cardwise/migrations"
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func main() {
	seed := flag.Bool("seed", false, "upsert the built-in card catalog after migrating")
	flag.Parse()

	cfg := config.MustLoad()
	slog.SetDefault(config.NewLogger(cfg.LogLevel))

	db, err := sql.Open("pgx", cfg.DBConn)
	if err != nil {
		slog.Error("Не удалось открыть БД", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// миграции вшиты в бинарник
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Unsupported dialect", "error", err)
		os.Exit(1)
	}

	slog.Info("Применяем миграции")
	if err := goose.Up(db, "."); err != nil {
		slog.Error("Миграции завершились с ошибкой", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Миграции применены")

	if *seed {
		if err := seedCatalog(context.Background(), cfg.DBConn); err != nil {
			slog.Error("Seeding failed", "error", err)
			os.Exit(1)
		}
	}
}

func seedCatalog(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := postgres.NewStorage(pool)
	for _, p := range catalog.SeedPrograms() {
		if err := store.UpsertProgram(ctx, p); err != nil {
			return err
		}
	}
	for _, card := range catalog.SeedCards() {
		if err := store.UpsertCard(ctx, card); err != nil {
			return err
		}
		slog.Info("Card seeded", "card_id", card.ID)
	}
	return nil
}
