// Package entity defines the derived series produced by the analytics feature.
package entity

import (
	"errors"
	"time"
)

// Metric names one derived statistic.
type Metric string

const (
	// MetricQuarterlyReturns is the quarter-over-quarter percent change of the close.
	MetricQuarterlyReturns Metric = "quarterly_returns"
	// MetricMA180 is the 180-day moving average of the close.
	MetricMA180 Metric = "ma180"
	// MetricVol180 is the 180-day annualized rolling volatility.
	MetricVol180 Metric = "vol180"
)

// ErrUnknownMetric is returned for a Metric outside the enumerated set.
var ErrUnknownMetric = errors.New("unknown metric")

// Metrics lists every supported metric.
var Metrics = []Metric{MetricQuarterlyReturns, MetricMA180, MetricVol180}

// Valid reports whether m is a supported metric.
func (m Metric) Valid() bool {
	for _, x := range Metrics {
		if m == x {
			return true
		}
	}
	return false
}

// Title is the human-readable name used on charts.
func (m Metric) Title() string {
	switch m {
	case MetricQuarterlyReturns:
		return "Quarterly return (%)"
	case MetricMA180:
		return "180-day moving average"
	case MetricVol180:
		return "180-day annualized volatility"
	default:
		return string(m)
	}
}

// Point is one value of a derived series.
type Point struct {
	Date   time.Time `json:"date"`             // Anchor trading day
	Period string    `json:"period,omitempty"` // Resampling period label (e.g. "2004Q3"), if any
	Value  float64   `json:"value"`
}

// Series is the derived series of one partition.
type Series struct {
	Partition string  `json:"partition"`
	Points    []Point `json:"points"`
}

// ResultSet holds one series per partition, in partition order.
type ResultSet struct {
	Metric Metric   `json:"metric"`
	Series []Series `json:"series"`
}
