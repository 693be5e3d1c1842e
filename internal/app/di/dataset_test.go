package di

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset_analytics/internal/platform/config"
)

const sample = `Date,Open,High,Low,Close,Volume,OpenInt
1990-01-02,10,11,9,10.5,1000,0
1990-01-03,10.5,11,10,10.8,1200,0
1990-01-04,10.8,11.2,10.6,11.0,900,0
`

func TestNewPriceSource_CSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "dis.us.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg := &config.Config{Data: config.DataConfig{Source: config.SourceCSV, File: path, Symbol: "DIS"}}
	source, closeFn, err := NewPriceSource(cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	assert.Equal(t, "csv:"+path, source.Describe())

	uc, err := NewDatasetUsecase(cfg, source)
	require.NoError(t, err)
	ds, err := uc.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Len(t, ds.Partitions, 3)
}

func TestNewPriceSource_DB(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Data: config.DataConfig{Source: config.SourceDB, Symbol: "DIS"},
		DB:   config.DBConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "prices.db"), Migrate: true},
	}
	source, closeFn, err := NewPriceSource(cfg)
	require.NoError(t, err)
	require.NotNil(t, source)
	assert.NoError(t, closeFn())
}

func TestNewPriceSource_Unsupported(t *testing.T) {
	t.Parallel()

	_, _, err := NewPriceSource(&config.Config{Data: config.DataConfig{Source: "s3"}})
	assert.Error(t, err)
}

func TestNewDatasetUsecase_DescendingBoundaries(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Data: config.DataConfig{Boundaries: []string{"2005-01-01", "1990-01-01"}}}
	_, err := NewDatasetUsecase(cfg, nil)
	assert.Error(t, err)
}
