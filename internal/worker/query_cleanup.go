// Package worker runs background maintenance jobs.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Cleaner removes expired resolved queries.
type Cleaner interface {
	CleanupResolved(ctx context.Context) (int64, error)
}

// QueryCleanupWorker sweeps resolved queries on a fixed interval. Each sweep runs under
// a shared lock so only one server instance sweeps at a time.
type QueryCleanupWorker struct {
	cleaner  Cleaner
	locker   Locker
	lockKey  string
	lockTTL  time.Duration
	interval time.Duration
	log      *zap.Logger
}

func NewQueryCleanupWorker(cleaner Cleaner, locker Locker, lockKey string, interval, lockTTL time.Duration, log *zap.Logger) *QueryCleanupWorker {
	return &QueryCleanupWorker{
		cleaner:  cleaner,
		locker:   locker,
		lockKey:  lockKey,
		lockTTL:  lockTTL,
		interval: interval,
		log:      log,
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (w *QueryCleanupWorker) Run(ctx context.Context) {
	w.log.Info("Query cleanup worker started", zap.Duration("interval", w.interval))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.Sweep(ctx)

		select {
		case <-ctx.Done():
			w.log.Info("Query cleanup worker stopping")
			return
		case <-ticker.C:
		}
	}
}

// Sweep runs one cleanup if the lock can be taken. It reports whether it ran.
func (w *QueryCleanupWorker) Sweep(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}

	release, ok, err := w.locker.TryLock(ctx, w.lockKey, w.lockTTL)
	if err != nil {
		w.log.Warn("Could not attempt cleanup lock", zap.Error(err))
		return false
	}
	if !ok {
		w.log.Debug("Cleanup lock held elsewhere, skipping sweep")
		return false
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			w.log.Warn("Could not release cleanup lock", zap.Error(err))
		}
	}()

	deleted, err := w.cleaner.CleanupResolved(ctx)
	if err != nil {
		w.log.Warn("Resolved query cleanup failed", zap.Error(err))
		return true
	}
	w.log.Debug("Resolved query sweep finished", zap.Int64("deleted", deleted))
	return true
}
