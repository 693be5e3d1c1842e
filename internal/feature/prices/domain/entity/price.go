// Package entity defines the domain models for the prices feature.
package entity

import (
	"fmt"
	"time"
)

// Partition labels in chronological order.
const (
	LabelEarly  = "early"
	LabelMiddle = "middle"
	LabelRecent = "recent"
)

// PartitionLabels lists the partition labels in chronological order.
var PartitionLabels = []string{LabelEarly, LabelMiddle, LabelRecent}

// PriceRecord is one trading day of OHLCV data.
type PriceRecord struct {
	Date   time.Time // Trading day (UTC midnight)
	Open   float64   // Opening price
	High   float64   // Highest price of the day
	Low    float64   // Lowest price of the day
	Close  float64   // Closing price
	Volume int64     // Traded volume
}

// Partition is a contiguous, date-ordered slice of the full price history.
type Partition struct {
	Label   string
	Records []PriceRecord
}

// Start returns the first trading day of the partition.
func (p Partition) Start() time.Time {
	if len(p.Records) == 0 {
		return time.Time{}
	}
	return p.Records[0].Date
}

// End returns the last trading day of the partition.
func (p Partition) End() time.Time {
	if len(p.Records) == 0 {
		return time.Time{}
	}
	return p.Records[len(p.Records)-1].Date
}

// Dataset is the loaded price history together with its three partitions.
// It is built once at startup and must not be mutated afterwards.
type Dataset struct {
	Symbol     string
	Source     string
	Records    []PriceRecord
	Partitions []Partition
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Fingerprint identifies the loaded data so derived values can be cached
// across processes that serve the same file.
func (d *Dataset) Fingerprint() string {
	if d.Len() == 0 {
		return "empty"
	}
	first := d.Records[0].Date.Format("20060102")
	last := d.Records[len(d.Records)-1].Date.Format("20060102")
	return fmt.Sprintf("%s-%s-%d-%s", d.Symbol, first, len(d.Records), last)
}
