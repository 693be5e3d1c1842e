package adapters

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dataset_analytics/internal/feature/prices/domain"
	"dataset_analytics/internal/feature/prices/domain/entity"
	"dataset_analytics/internal/feature/prices/usecase"
)

// priceGorm stores daily price records of a single symbol in a SQL database.
type priceGorm struct {
	db     *gorm.DB
	symbol string
}

var (
	_ usecase.PriceSource = (*priceGorm)(nil)
	_ usecase.PriceStore  = (*priceGorm)(nil)
)

// NewPriceRepository creates a GORM-backed price repository for symbol.
func NewPriceRepository(db *gorm.DB, symbol string) *priceGorm {
	return &priceGorm{db: db, symbol: symbol}
}

// PriceModel is the database representation of a PriceRecord.
type PriceModel struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"size:32;not null;uniqueIndex:price_sym_date,priority:1"`
	Date   time.Time `gorm:"not null;uniqueIndex:price_sym_date,priority:2"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (PriceModel) TableName() string {
	return "prices"
}

func toModel(symbol string, e entity.PriceRecord) PriceModel {
	return PriceModel{
		Symbol: symbol,
		Date:   e.Date,
		Open:   e.Open,
		High:   e.High,
		Low:    e.Low,
		Close:  e.Close,
		Volume: e.Volume,
	}
}

// Describe returns a human-readable description of the source.
func (r *priceGorm) Describe() string {
	return "db:" + r.symbol
}

// UpsertBatch inserts records, overwriting prices of days that already exist.
func (r *priceGorm) UpsertBatch(ctx context.Context, records []entity.PriceRecord) error {
	if len(records) == 0 {
		return nil
	}
	ms := make([]PriceModel, 0, len(records))
	for _, e := range records {
		ms = append(ms, toModel(r.symbol, e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).Create(&ms).Error
}

// Load returns every stored record of the symbol in ascending date order.
func (r *priceGorm) Load(ctx context.Context) ([]entity.PriceRecord, error) {
	var rows []PriceModel
	err := r.db.WithContext(ctx).
		Where("symbol = ?", r.symbol).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load prices for %s: %w", r.symbol, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows for %s", domain.ErrEmptyDataset, r.symbol)
	}

	out := make([]entity.PriceRecord, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.PriceRecord{
			Date:   m.Date.UTC(),
			Open:   m.Open,
			High:   m.High,
			Low:    m.Low,
			Close:  m.Close,
			Volume: m.Volume,
		})
	}
	return out, nil
}
