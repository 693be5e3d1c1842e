// Package usecase implements loading and partitioning of the price history.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"dataset_analytics/internal/feature/prices/domain"
	"dataset_analytics/internal/feature/prices/domain/entity"
)

// PriceSource abstracts where the raw price records come from.
// Following Go convention, the interface is defined by the consumer (usecase).
type PriceSource interface {
	// Load returns every record the source holds, in any order.
	Load(ctx context.Context) ([]entity.PriceRecord, error)
	// Describe returns a short description used in logs and responses.
	Describe() string
}

// DatasetUsecase builds the read-only Dataset served by the API.
type DatasetUsecase struct {
	source     PriceSource
	symbol     string
	boundaries []time.Time
}

// NewDatasetUsecase creates a DatasetUsecase.
// boundaries must be empty (equal-count thirds) or hold two ascending dates.
func NewDatasetUsecase(source PriceSource, symbol string, boundaries []time.Time) (*DatasetUsecase, error) {
	if err := validateBoundaries(boundaries); err != nil {
		return nil, err
	}
	return &DatasetUsecase{source: source, symbol: symbol, boundaries: boundaries}, nil
}

// Load reads the source, normalizes the records and splits them into partitions.
func (u *DatasetUsecase) Load(ctx context.Context) (*entity.Dataset, error) {
	raw, err := u.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	records := Normalize(raw)
	if dropped := len(raw) - len(records); dropped > 0 {
		slog.Warn("dropped duplicate or invalid trading days", "source", u.source.Describe(), "dropped", dropped)
	}

	var parts []entity.Partition
	if len(u.boundaries) == 0 {
		parts, err = SplitEqual(records)
	} else {
		parts, err = SplitByDate(records, u.boundaries[0], u.boundaries[1])
	}
	if err != nil {
		return nil, fmt.Errorf("partition %s: %w", u.source.Describe(), err)
	}

	ds := &entity.Dataset{
		Symbol:     u.symbol,
		Source:     u.source.Describe(),
		Records:    records,
		Partitions: parts,
	}
	for _, p := range parts {
		slog.Info("partition loaded",
			"label", p.Label,
			"records", len(p.Records),
			"start", p.Start().Format(time.DateOnly),
			"end", p.End().Format(time.DateOnly),
		)
	}
	return ds, nil
}

// Normalize sorts records by date and keeps the first record of each trading day.
// Records without a positive, finite close are dropped.
func Normalize(records []entity.PriceRecord) []entity.PriceRecord {
	out := make([]entity.PriceRecord, 0, len(records))
	for _, r := range records {
		if r.Close > 0 && !math.IsInf(r.Close, 1) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	n := 0
	for i, r := range out {
		if i > 0 && r.Date.Equal(out[n-1].Date) {
			continue
		}
		out[n] = r
		n++
	}
	return out[:n]
}

func validateBoundaries(b []time.Time) error {
	switch len(b) {
	case 0:
		return nil
	case 2:
		if !b[0].Before(b[1]) {
			return fmt.Errorf("%w: %s is not before %s", domain.ErrInvalidBoundaries,
				b[0].Format(time.DateOnly), b[1].Format(time.DateOnly))
		}
		return nil
	default:
		return fmt.Errorf("%w: want 2 dates, got %d", domain.ErrInvalidBoundaries, len(b))
	}
}
