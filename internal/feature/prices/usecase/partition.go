package usecase

import (
	"sort"
	"time"

	"dataset_analytics/internal/feature/prices/domain"
	"dataset_analytics/internal/feature/prices/domain/entity"
)

// SplitEqual splits date-ordered records into three equal-count partitions.
// Any remainder goes to the earlier partitions.
func SplitEqual(records []entity.PriceRecord) ([]entity.Partition, error) {
	k := len(entity.PartitionLabels)
	if len(records) < k {
		return nil, domain.ErrTooFewRecords
	}

	size, rem := len(records)/k, len(records)%k
	parts := make([]entity.Partition, 0, k)
	start := 0
	for i, label := range entity.PartitionLabels {
		end := start + size
		if i < rem {
			end++
		}
		parts = append(parts, entity.Partition{Label: label, Records: records[start:end:end]})
		start = end
	}
	return parts, nil
}

// SplitByDate splits date-ordered records into [start, b1), [b1, b2) and [b2, end].
func SplitByDate(records []entity.PriceRecord, b1, b2 time.Time) ([]entity.Partition, error) {
	if len(records) < len(entity.PartitionLabels) {
		return nil, domain.ErrTooFewRecords
	}

	cut := func(b time.Time) int {
		return sort.Search(len(records), func(i int) bool { return !records[i].Date.Before(b) })
	}
	i1, i2 := cut(b1), cut(b2)

	bounds := [][2]int{{0, i1}, {i1, i2}, {i2, len(records)}}
	parts := make([]entity.Partition, 0, len(bounds))
	for i, bd := range bounds {
		if bd[0] >= bd[1] {
			return nil, domain.ErrEmptyPartition
		}
		parts = append(parts, entity.Partition{
			Label:   entity.PartitionLabels[i],
			Records: records[bd[0]:bd[1]:bd[1]],
		})
	}
	return parts, nil
}
