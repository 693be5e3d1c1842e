// Package usecase computes per-partition statistics over the loaded dataset.
package usecase

import (
	"context"
	"fmt"
	"time"

	"dataset_analytics/internal/feature/analytics/domain/entity"
	priceentity "dataset_analytics/internal/feature/prices/domain/entity"
)

// ComputeObserver receives the duration of every computation.
type ComputeObserver interface {
	ObserveCompute(metric string, d time.Duration, err error)
}

// AnalyticsUsecase computes ResultSets over a read-only Dataset.
type AnalyticsUsecase struct {
	ds       *priceentity.Dataset
	window   int
	observer ComputeObserver
}

// NewAnalyticsUsecase creates an AnalyticsUsecase. observer may be nil.
func NewAnalyticsUsecase(ds *priceentity.Dataset, observer ComputeObserver) *AnalyticsUsecase {
	return &AnalyticsUsecase{ds: ds, window: DefaultWindow, observer: observer}
}

// Fingerprint identifies the dataset the results are computed from.
func (u *AnalyticsUsecase) Fingerprint() string {
	return u.ds.Fingerprint()
}

// Compute runs the calculator for metric on each partition independently.
func (u *AnalyticsUsecase) Compute(ctx context.Context, metric entity.Metric) (rs entity.ResultSet, err error) {
	start := time.Now()
	defer func() {
		if u.observer != nil {
			u.observer.ObserveCompute(string(metric), time.Since(start), err)
		}
	}()

	calc, err := u.calculator(metric)
	if err != nil {
		return entity.ResultSet{}, err
	}

	rs = entity.ResultSet{Metric: metric, Series: make([]entity.Series, 0, len(u.ds.Partitions))}
	for _, p := range u.ds.Partitions {
		if err := ctx.Err(); err != nil {
			return entity.ResultSet{}, err
		}
		pts, err := calc(p.Records)
		if err != nil {
			return entity.ResultSet{}, fmt.Errorf("%s on %s partition: %w", metric, p.Label, err)
		}
		rs.Series = append(rs.Series, entity.Series{Partition: p.Label, Points: pts})
	}
	return rs, nil
}

type calculator func([]priceentity.PriceRecord) ([]entity.Point, error)

func (u *AnalyticsUsecase) calculator(metric entity.Metric) (calculator, error) {
	switch metric {
	case entity.MetricQuarterlyReturns:
		return func(r []priceentity.PriceRecord) ([]entity.Point, error) { return QuarterlyReturns(r), nil }, nil
	case entity.MetricMA180:
		return func(r []priceentity.PriceRecord) ([]entity.Point, error) { return MovingAverage(r, u.window) }, nil
	case entity.MetricVol180:
		return func(r []priceentity.PriceRecord) ([]entity.Point, error) { return RollingVolatility(r, u.window) }, nil
	default:
		return nil, fmt.Errorf("%w: %q", entity.ErrUnknownMetric, metric)
	}
}
