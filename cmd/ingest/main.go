package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	priceadapters "dataset_analytics/internal/feature/prices/adapters"
	priceusecase "dataset_analytics/internal/feature/prices/usecase"
	"dataset_analytics/internal/platform/cache"
	"dataset_analytics/internal/platform/config"
	platformdb "dataset_analytics/internal/platform/db"
	"dataset_analytics/internal/platform/logger"
	platformredis "dataset_analytics/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.Env))

	db, err := platformdb.OpenDB(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	source := priceadapters.NewCSVSource(cfg.Data.File)
	store := priceadapters.NewPriceRepository(db, cfg.Data.Symbol)
	uc := priceusecase.NewIngestUsecase(source, store)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := uc.Ingest(ctx)
	if err != nil {
		slog.Error("ingest failed", "written", n, "error", err)
		os.Exit(1)
	}

	// Cached results may have been computed from the rows just replaced.
	if cfg.Redis.Host != "" {
		if rdb, err := platformredis.NewRedisClient(cfg.Redis); err == nil {
			if err := cache.InvalidateSymbol(ctx, rdb, cfg.Redis.Namespace, cfg.Data.Symbol); err != nil {
				slog.Warn("failed to invalidate cache", "symbol", cfg.Data.Symbol, "error", err)
			}
			_ = rdb.Close()
		}
	}
	slog.Info("ingest ok", "symbol", cfg.Data.Symbol, "records", n)
}
