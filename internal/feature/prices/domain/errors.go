// Package domain holds the sentinel errors of the prices feature.
package domain

import "errors"

var (
	// ErrSourceNotFound is returned when the price file does not exist.
	ErrSourceNotFound = errors.New("price source not found")
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("required column missing")
	// ErrEmptyDataset is returned when the source yields no valid rows.
	ErrEmptyDataset = errors.New("dataset contains no valid rows")
	// ErrTooFewRecords is returned when there are fewer records than partitions.
	ErrTooFewRecords = errors.New("too few records to partition")
	// ErrEmptyPartition is returned when partition boundaries leave a partition empty.
	ErrEmptyPartition = errors.New("partition boundaries leave an empty partition")
	// ErrInvalidBoundaries is returned for malformed or unordered boundary dates.
	ErrInvalidBoundaries = errors.New("invalid partition boundaries")
)
