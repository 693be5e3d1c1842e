package usecase

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"dataset_analytics/internal/feature/analytics/domain/entity"
	priceentity "dataset_analytics/internal/feature/prices/domain/entity"
)

const (
	// DefaultWindow is the trailing window, in trading days, of the rolling statistics.
	DefaultWindow = 180
	// TradingDaysPerYear is used to annualize daily volatility.
	TradingDaysPerYear = 252
)

// ErrInvalidWindow is returned for a window too small for the statistic.
var ErrInvalidWindow = errors.New("invalid window size")

// QuarterlyReturns resamples records to calendar quarters using the last close
// of each quarter and returns the percent change between consecutive quarters.
// The first quarter has no prior value and is not part of the output.
func QuarterlyReturns(records []priceentity.PriceRecord) []entity.Point {
	type quarterEnd struct {
		key   int
		label string
		rec   priceentity.PriceRecord
	}

	var ends []quarterEnd
	for _, r := range records {
		q := (int(r.Date.Month())-1)/3 + 1
		key := r.Date.Year()*4 + q
		if n := len(ends); n > 0 && ends[n-1].key == key {
			ends[n-1].rec = r
			continue
		}
		ends = append(ends, quarterEnd{key: key, label: fmt.Sprintf("%dQ%d", r.Date.Year(), q), rec: r})
	}

	if len(ends) < 2 {
		return []entity.Point{}
	}
	out := make([]entity.Point, 0, len(ends)-1)
	for i := 1; i < len(ends); i++ {
		prev, cur := ends[i-1].rec.Close, ends[i].rec.Close
		out = append(out, entity.Point{
			Date:   ends[i].rec.Date,
			Period: ends[i].label,
			Value:  (cur/prev - 1) * 100,
		})
	}
	return out
}

// MovingAverage returns the mean close over each trailing window.
// The first window-1 records have no value, so the output has
// max(0, len(records)-window+1) points.
func MovingAverage(records []priceentity.PriceRecord, window int) ([]entity.Point, error) {
	if window < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	closes := closes(records)
	if len(closes) < window {
		return []entity.Point{}, nil
	}

	out := make([]entity.Point, 0, len(closes)-window+1)
	for i := window - 1; i < len(closes); i++ {
		out = append(out, entity.Point{
			Date:  records[i].Date,
			Value: stat.Mean(closes[i-window+1:i+1], nil),
		})
	}
	return out, nil
}

// RollingVolatility returns the sample standard deviation of daily returns over
// each trailing window of returns, annualized by sqrt(TradingDaysPerYear).
// The output has max(0, len(records)-window) points and is never negative.
func RollingVolatility(records []priceentity.PriceRecord, window int) ([]entity.Point, error) {
	if window < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}
	rets := DailyReturns(records)
	if len(rets) < window {
		return []entity.Point{}, nil
	}

	scale := math.Sqrt(TradingDaysPerYear)
	out := make([]entity.Point, 0, len(rets)-window+1)
	for i := window - 1; i < len(rets); i++ {
		v := stat.Variance(rets[i-window+1:i+1], nil)
		if v < 0 || math.IsNaN(v) {
			v = 0
		}
		out = append(out, entity.Point{
			// rets[i] is the return into records[i+1].
			Date:  records[i+1].Date,
			Value: math.Sqrt(v) * scale,
		})
	}
	return out, nil
}

// DailyReturns returns close[i]/close[i-1]-1 for i >= 1.
func DailyReturns(records []priceentity.PriceRecord) []float64 {
	if len(records) < 2 {
		return nil
	}
	out := make([]float64, len(records)-1)
	for i := 1; i < len(records); i++ {
		out[i-1] = records[i].Close/records[i-1].Close - 1
	}
	return out
}

func closes(records []priceentity.PriceRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Close
	}
	return out
}
