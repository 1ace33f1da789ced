// Package reconciler periodically repairs registered counts that drifted
// from the number of active registrations.
package reconciler

import (
	"context"
	"log/slog"
	"time"

	"volunteerHub/internal/lib/logger/sl"
	"volunteerHub/internal/metrics"
)

type Store interface {
	ReconcileRegisteredCounts(ctx context.Context) (int64, error)
}

type Reconciler struct {
	log      *slog.Logger
	store    Store
	interval time.Duration
	metrics  *metrics.Metrics
}

func New(log *slog.Logger, store Store, interval time.Duration, m *metrics.Metrics) *Reconciler {
	return &Reconciler{
		log:      log.With(slog.String("component", "worker/reconciler")),
		store:    store,
		interval: interval,
		metrics:  m,
	}
}

// Run blocks until ctx is done. A non-positive interval disables the job.
func (r *Reconciler) Run(ctx context.Context) error {
	if r.interval <= 0 {
		r.log.Info("reconciler disabled")
		return nil
	}

	r.log.Info("reconciler started", slog.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil {
				r.log.Error("failed to reconcile registered counts", sl.Err(err))
			}
		case <-ctx.Done():
			r.log.Info("reconciler stopped")
			return nil
		}
	}
}

func (r *Reconciler) RunOnce(ctx context.Context) (int64, error) {
	fixed, err := r.store.ReconcileRegisteredCounts(ctx)
	if err != nil {
		return 0, err
	}

	if fixed > 0 {
		r.log.Warn("registered counts repaired", slog.Int64("occurrences", fixed))
		r.metrics.ObserveReconciled(fixed)
	}

	return fixed, nil
}
