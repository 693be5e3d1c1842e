package usecase_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset_analytics/internal/feature/analytics/usecase"
	priceentity "dataset_analytics/internal/feature/prices/domain/entity"
)

var day0 = time.Date(2001, 1, 2, 0, 0, 0, 0, time.UTC)

// tradingDays returns one record per weekday starting at day0 with closes from price(i).
func tradingDays(n int, price func(i int) float64) []priceentity.PriceRecord {
	out := make([]priceentity.PriceRecord, 0, n)
	d := day0
	for len(out) < n {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			out = append(out, priceentity.PriceRecord{Date: d, Close: price(len(out))})
		}
		d = d.AddDate(0, 0, 1)
	}
	return out
}

func constant(v float64) func(int) float64 { return func(int) float64 { return v } }

func TestMovingAverage_ConstantPrice(t *testing.T) {
	t.Parallel()

	records := tradingDays(200, constant(42.5))

	pts, err := usecase.MovingAverage(records, usecase.DefaultWindow)
	require.NoError(t, err)

	require.Len(t, pts, 200-(usecase.DefaultWindow-1))
	for _, p := range pts {
		assert.InDelta(t, 42.5, p.Value, 1e-9)
	}
	assert.Equal(t, records[179].Date, pts[0].Date)
	assert.Equal(t, records[199].Date, pts[len(pts)-1].Date)
}

func TestMovingAverage_Values(t *testing.T) {
	t.Parallel()

	records := tradingDays(5, func(i int) float64 { return float64(i + 1) }) // 1..5

	pts, err := usecase.MovingAverage(records, 3)
	require.NoError(t, err)

	require.Len(t, pts, 3)
	assert.InDelta(t, 2.0, pts[0].Value, 1e-12)
	assert.InDelta(t, 3.0, pts[1].Value, 1e-12)
	assert.InDelta(t, 4.0, pts[2].Value, 1e-12)
}

func TestMovingAverage_Length(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 179, 180, 181, 500} {
		pts, err := usecase.MovingAverage(tradingDays(n, constant(1)), usecase.DefaultWindow)
		require.NoError(t, err)
		assert.Len(t, pts, max(0, n-(usecase.DefaultWindow-1)), "n=%d", n)
	}
}

func TestMovingAverage_InvalidWindow(t *testing.T) {
	t.Parallel()

	_, err := usecase.MovingAverage(tradingDays(10, constant(1)), 0)
	assert.ErrorIs(t, err, usecase.ErrInvalidWindow)
}

func TestRollingVolatility_ConstantPrice(t *testing.T) {
	t.Parallel()

	records := tradingDays(200, constant(42.5))

	pts, err := usecase.RollingVolatility(records, usecase.DefaultWindow)
	require.NoError(t, err)

	require.Len(t, pts, 200-usecase.DefaultWindow)
	for _, p := range pts {
		assert.Zero(t, p.Value)
	}
	assert.Equal(t, records[180].Date, pts[0].Date)
	assert.Equal(t, records[199].Date, pts[len(pts)-1].Date)
}

func TestRollingVolatility_Values(t *testing.T) {
	t.Parallel()

	// Closes 100, 110, 99, 108.9: returns 0.1, -0.1, 0.1.
	closes := []float64{100, 110, 99, 108.9}
	records := tradingDays(len(closes), func(i int) float64 { return closes[i] })

	pts, err := usecase.RollingVolatility(records, 2)
	require.NoError(t, err)
	require.Len(t, pts, 2)

	// Sample std of {0.1, -0.1} is 0.1*sqrt(2).
	want := 0.1 * math.Sqrt2 * math.Sqrt(usecase.TradingDaysPerYear)
	assert.InDelta(t, want, pts[0].Value, 1e-9)
	assert.InDelta(t, want, pts[1].Value, 1e-9)
}

func TestRollingVolatility_NonNegative(t *testing.T) {
	t.Parallel()

	// Deterministic zig-zag with drift.
	records := tradingDays(600, func(i int) float64 {
		return 50 + float64(i)*0.1 + 5*math.Sin(float64(i)/3)
	})

	pts, err := usecase.RollingVolatility(records, usecase.DefaultWindow)
	require.NoError(t, err)
	require.Len(t, pts, 600-usecase.DefaultWindow)
	for _, p := range pts {
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.False(t, math.IsNaN(p.Value))
	}
}

func TestRollingVolatility_ShortInput(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 180} {
		pts, err := usecase.RollingVolatility(tradingDays(n, constant(1)), usecase.DefaultWindow)
		require.NoError(t, err)
		assert.Empty(t, pts, "n=%d", n)
	}
}

func TestRollingVolatility_InvalidWindow(t *testing.T) {
	t.Parallel()

	_, err := usecase.RollingVolatility(tradingDays(10, constant(1)), 1)
	assert.ErrorIs(t, err, usecase.ErrInvalidWindow)
}

func TestQuarterlyReturns(t *testing.T) {
	t.Parallel()

	d := func(y int, m time.Month, day int) time.Time { return time.Date(y, m, day, 0, 0, 0, 0, time.UTC) }
	records := []priceentity.PriceRecord{
		{Date: d(2001, 1, 2), Close: 10},
		{Date: d(2001, 3, 30), Close: 100}, // 2001Q1 end
		{Date: d(2001, 4, 2), Close: 90},
		{Date: d(2001, 6, 29), Close: 110}, // 2001Q2 end
		{Date: d(2001, 9, 28), Close: 99},  // 2001Q3 end
		{Date: d(2002, 1, 2), Close: 99},   // 2001Q4 skipped entirely, 2002Q1 end
	}

	pts := usecase.QuarterlyReturns(records)

	require.Len(t, pts, 3)
	assert.Equal(t, "2001Q2", pts[0].Period)
	assert.Equal(t, d(2001, 6, 29), pts[0].Date)
	assert.InDelta(t, 10.0, pts[0].Value, 1e-9)
	assert.Equal(t, "2001Q3", pts[1].Period)
	assert.InDelta(t, -10.0, pts[1].Value, 1e-9)
	assert.Equal(t, "2002Q1", pts[2].Period)
	assert.InDelta(t, 0.0, pts[2].Value, 1e-9)
}

func TestQuarterlyReturns_ExcludesFirstPeriod(t *testing.T) {
	t.Parallel()

	records := tradingDays(700, func(i int) float64 { return 10 + float64(i) })
	first := records[0].Date
	firstLabel := first.Format("2006") + "Q1"

	pts := usecase.QuarterlyReturns(records)

	require.NotEmpty(t, pts)
	for _, p := range pts {
		assert.NotEqual(t, firstLabel, p.Period)
		assert.True(t, p.Date.After(first))
	}
}

func TestQuarterlyReturns_SingleQuarter(t *testing.T) {
	t.Parallel()

	pts := usecase.QuarterlyReturns(tradingDays(20, constant(1)))
	assert.NotNil(t, pts)
	assert.Empty(t, pts)
}
