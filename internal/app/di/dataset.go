// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"

	"gorm.io/gorm"

	priceadapters "dataset_analytics/internal/feature/prices/adapters"
	priceusecase "dataset_analytics/internal/feature/prices/usecase"
	"dataset_analytics/internal/platform/config"
	platformdb "dataset_analytics/internal/platform/db"
)

// NewPriceSource returns the PriceSource selected by DATA_SOURCE.
// The returned close func releases the database connection, if one was opened.
func NewPriceSource(cfg *config.Config) (priceusecase.PriceSource, func() error, error) {
	switch cfg.Data.Source {
	case config.SourceCSV:
		return priceadapters.NewCSVSource(cfg.Data.File), func() error { return nil }, nil
	case config.SourceDB:
		db, err := platformdb.OpenDB(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return priceadapters.NewPriceRepository(db, cfg.Data.Symbol), closer(db), nil
	default:
		return nil, nil, fmt.Errorf("unsupported data source %q", cfg.Data.Source)
	}
}

// NewDatasetUsecase builds the loader for the configured source and partition boundaries.
func NewDatasetUsecase(cfg *config.Config, source priceusecase.PriceSource) (*priceusecase.DatasetUsecase, error) {
	boundaries, err := cfg.Data.PartitionBoundaries()
	if err != nil {
		return nil, err
	}
	return priceusecase.NewDatasetUsecase(source, cfg.Data.Symbol, boundaries)
}

func closer(db *gorm.DB) func() error {
	return func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
}
