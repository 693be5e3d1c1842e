package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"dataset_analytics/internal/feature/prices/domain/entity"
)

// ingestBatchSize is the number of rows written per upsert statement.
const ingestBatchSize = 500

// PriceStore persists price records.
type PriceStore interface {
	UpsertBatch(ctx context.Context, records []entity.PriceRecord) error
}

// IngestUsecase copies every record from a PriceSource into a PriceStore.
type IngestUsecase struct {
	source PriceSource
	store  PriceStore
}

// NewIngestUsecase creates a new IngestUsecase.
func NewIngestUsecase(source PriceSource, store PriceStore) *IngestUsecase {
	return &IngestUsecase{source: source, store: store}
}

// Ingest loads the source, drops duplicate days and upserts in batches.
// It returns the number of records written.
func (iu *IngestUsecase) Ingest(ctx context.Context) (int, error) {
	raw, err := iu.source.Load(ctx)
	if err != nil {
		return 0, err
	}
	records := Normalize(raw)

	written := 0
	for start := 0; start < len(records); start += ingestBatchSize {
		end := min(start+ingestBatchSize, len(records))
		if err := iu.store.UpsertBatch(ctx, records[start:end]); err != nil {
			return written, fmt.Errorf("upsert rows %d-%d: %w", start, end, err)
		}
		written = end
	}
	slog.Info("ingest finished", "source", iu.source.Describe(), "records", written)
	return written, nil
}
