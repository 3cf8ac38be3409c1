package storage

import (
	"context"
	"errors"
	"sort"
	"time"
)

// MergedReader reads from several sinks and returns their records as one
// timestamp-ordered list. A sink that fails is skipped as long as another one
// answered; the error is returned only when every sink failed.
type MergedReader struct {
	readers []Reader
}

func NewMergedReader(readers ...Reader) *MergedReader {
	return &MergedReader{readers: readers}
}

func (m *MergedReader) LoadBetween(ctx context.Context, from, to time.Time) ([]Record, error) {
	var (
		out  []Record
		errs []error
	)
	for _, r := range m.readers {
		recs, err := r.LoadBetween(ctx, from, to)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, recs...)
	}
	if len(errs) > 0 && len(errs) == len(m.readers) {
		return nil, errors.Join(errs...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}
