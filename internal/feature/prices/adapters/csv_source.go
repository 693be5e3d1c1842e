// Package adapters provides PriceSource implementations for the prices feature.
package adapters

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"dataset_analytics/internal/feature/prices/domain"
	"dataset_analytics/internal/feature/prices/domain/entity"
	"dataset_analytics/internal/feature/prices/usecase"
)

// requiredColumns are the header names every price file must carry.
// Anything else in the header (e.g. "OpenInt") is ignored.
var requiredColumns = []string{"date", "open", "high", "low", "close", "volume"}

// dateLayouts are tried in order when parsing the Date column.
var dateLayouts = []string{"2006-01-02", "20060102", "2006/01/02"}

// CSVSource reads daily price records from a delimited text file with a header row.
type CSVSource struct {
	path string
}

var _ usecase.PriceSource = (*CSVSource)(nil)

// NewCSVSource creates a CSVSource for the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Describe returns a human-readable description of the source.
func (s *CSVSource) Describe() string {
	return "csv:" + s.path
}

// Load opens the file and parses every row into a PriceRecord.
// Rows that cannot be parsed are skipped and reported in a single warning.
func (s *CSVSource) Load(ctx context.Context) ([]entity.PriceRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, s.path)
		}
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close price file", "path", s.path, "error", err)
		}
	}()

	records, skipped, err := ParsePrices(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if skipped > 0 {
		slog.Warn("skipped malformed price rows", "path", s.path, "skipped", skipped, "loaded", len(records))
	}
	return records, nil
}

// ParsePrices reads a header row followed by data rows from r.
// It returns the parsed records and the number of skipped rows.
func ParsePrices(ctx context.Context, r io.Reader) ([]entity.PriceRecord, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, domain.ErrEmptyDataset
		}
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	idx, err := columnIndex(header)
	if err != nil {
		return nil, 0, err
	}

	var (
		out     []entity.PriceRecord
		skipped int
	)
	for line := 2; ; line++ {
		if line%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, 0, err
			}
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				skipped++
				continue
			}
			return nil, 0, fmt.Errorf("read line %d: %w", line, err)
		}
		rec, err := parseRow(row, idx)
		if err != nil {
			slog.Debug("skipping price row", "line", line, "error", err)
			skipped++
			continue
		}
		out = append(out, rec)
	}

	if len(out) == 0 {
		return nil, skipped, domain.ErrEmptyDataset
	}
	return out, skipped, nil
}

// columnIndex maps each required column to its position in the header.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", domain.ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func parseRow(row []string, idx map[string]int) (entity.PriceRecord, error) {
	field := func(col string) (string, error) {
		i := idx[col]
		if i >= len(row) {
			return "", fmt.Errorf("missing %s field", col)
		}
		return strings.TrimSpace(row[i]), nil
	}

	var rec entity.PriceRecord

	ds, err := field("date")
	if err != nil {
		return rec, err
	}
	if rec.Date, err = parseDate(ds); err != nil {
		return rec, err
	}

	floats := []struct {
		col string
		dst *float64
	}{
		{"open", &rec.Open},
		{"high", &rec.High},
		{"low", &rec.Low},
		{"close", &rec.Close},
	}
	for _, f := range floats {
		s, err := field(f.col)
		if err != nil {
			return rec, err
		}
		v, err := parseFinite(f.col, s)
		if err != nil {
			return rec, err
		}
		*f.dst = v
	}
	if rec.Close <= 0 {
		return rec, fmt.Errorf("non-positive close %v", rec.Close)
	}

	vs, err := field("volume")
	if err != nil {
		return rec, err
	}
	vol, err := parseFinite("volume", vs)
	if err != nil {
		return rec, err
	}
	// float64(MaxInt64) rounds up to 2^63, which does not fit in an int64.
	if vol < 0 || vol >= math.MaxInt64 {
		return rec, fmt.Errorf("volume %v out of range", vol)
	}
	rec.Volume = int64(vol)

	return rec, nil
}

// parseFinite parses s as a float and rejects NaN and infinities.
func parseFinite(col, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", col, s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse %s %q: not a finite number", col, s)
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q", s)
}
