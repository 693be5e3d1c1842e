package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"

	"dataset_analytics/internal/app/di"
	"dataset_analytics/internal/app/router"
	"dataset_analytics/internal/feature/analytics/adapters/chart"
	analyticshandler "dataset_analytics/internal/feature/analytics/transport/handler"
	analyticsusecase "dataset_analytics/internal/feature/analytics/usecase"
	priceshandler "dataset_analytics/internal/feature/prices/transport/handler"
	"dataset_analytics/internal/platform/cache"
	"dataset_analytics/internal/platform/config"
	platformhandler "dataset_analytics/internal/platform/http/handler"
	"dataset_analytics/internal/platform/logger"
	"dataset_analytics/internal/platform/metrics"
	platformredis "dataset_analytics/internal/platform/redis"
	"dataset_analytics/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.Env))
	if cfg.Env == config.EnvProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewRecorder(reg)

	// Dataset: loaded once, read-only for the life of the process
	source, closeSource, err := di.NewPriceSource(cfg)
	if err != nil {
		slog.Error("failed to open price source", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeSource(); err != nil {
			slog.Error("failed to close price source", "error", err)
		}
	}()
	datasetUC, err := di.NewDatasetUsecase(cfg, source)
	if err != nil {
		slog.Error("invalid partition configuration", "error", err)
		os.Exit(1)
	}
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), time.Minute)
	ds, err := datasetUC.Load(loadCtx)
	cancelLoad()
	if err != nil {
		slog.Error("failed to load dataset", "source", source.Describe(), "error", err)
		os.Exit(1)
	}
	for _, p := range ds.Partitions {
		rec.SetPartitionSize(p.Label, len(p.Records))
	}
	slog.Info("dataset loaded", "source", ds.Source, "records", ds.Len(), "fingerprint", ds.Fingerprint())

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Host != "" {
		if tmp, err := platformredis.NewRedisClient(cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// Usecase
	analyticsUC := analyticsusecase.NewAnalyticsUsecase(ds, rec)
	cachedAnalytics := cache.NewCachingAnalytics(rdb, cfg.Redis.TTL, analyticsUC, cfg.Redis.Namespace)

	// Handler
	handlers := router.Handlers{
		Data:      priceshandler.NewDataHandler(ds),
		Analytics: analyticshandler.NewAnalyticsHandler(cachedAnalytics, chart.NewPNGRenderer(ds.Symbol, 0, 0)),
		Health:    platformhandler.NewHealthHandler(ds),
	}
	if cfg.HTTP.RateLimit > 0 {
		handlers.Limiter = ratelimiter.NewRateLimiter(cfg.HTTP.RateLimit, time.Minute)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router.NewRouter(handlers, rec, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	sig := <-stop
	slog.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
