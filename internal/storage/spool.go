package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"shop-consultant/internal/metrics"
)

// SpoolingRecorder writes to primary and falls back to spool when primary fails,
// so a database outage does not lose conversations.
type SpoolingRecorder struct {
	primary Recorder
	spool   Recorder
	log     *zap.Logger
}

func NewSpoolingRecorder(primary, spool Recorder, log *zap.Logger) *SpoolingRecorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &SpoolingRecorder{primary: primary, spool: spool, log: log}
}

func (r *SpoolingRecorder) Append(ctx context.Context, rec Record) error {
	err := r.primary.Append(ctx, rec)
	if err == nil {
		return nil
	}
	metrics.RecordFailures.WithLabelValues("primary").Inc()
	if r.spool == nil {
		return err
	}
	// an aborted request is not spooled either
	if errors.Is(err, context.Canceled) {
		return err
	}
	r.log.Warn("primary record sink failed, spooling", zap.Int64("user_id", rec.UserID), zap.Error(err))
	if serr := r.spool.Append(ctx, rec); serr != nil {
		metrics.RecordFailures.WithLabelValues("spool").Inc()
		return fmt.Errorf("record not stored: %w", errors.Join(err, serr))
	}
	return nil
}
