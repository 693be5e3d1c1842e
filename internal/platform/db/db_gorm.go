// Package db opens the GORM connection of the price store.
package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	priceadapters "dataset_analytics/internal/feature/prices/adapters"
	"dataset_analytics/internal/platform/config"
)

const (
	connectTimeout = 60 * time.Second
	retryInterval  = 3 * time.Second
)

// OpenDB opens the configured database, retrying PostgreSQL for up to a minute,
// and migrates the prices table when cfg.Migrate is set.
func OpenDB(cfg config.DBConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	deadline := time.Now().Add(connectTimeout)
	for {
		db, err = gorm.Open(dialector, &gorm.Config{})
		if err == nil {
			break
		}
		if cfg.Driver == "sqlite" || time.Now().After(deadline) {
			return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
		}
		slog.Warn("DB connect failed, retrying", "driver", cfg.Driver, "error", err)
		time.Sleep(retryInterval)
	}

	if cfg.Migrate {
		if err := db.AutoMigrate(&priceadapters.PriceModel{}); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(cfg.DSN), nil
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
