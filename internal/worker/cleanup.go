package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/insurai/authcore/internal/repository"
)

// CleanupWorker periodically nulls out expired pending OTP and reset values.
// Expiry is already enforced at verification time, so this is storage hygiene
// only and has no behavioral effect.
type CleanupWorker struct {
	accounts repository.IAccountRepository
	interval time.Duration
	stopChan chan struct{}
}

// NewCleanupWorker creates a new cleanup worker
func NewCleanupWorker(accounts repository.IAccountRepository, interval time.Duration) *CleanupWorker {
	return &CleanupWorker{
		accounts: accounts,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start starts the cleanup loop in a background goroutine
func (w *CleanupWorker) Start() {
	zap.L().Info("starting cleanup worker", zap.Duration("interval", w.interval))

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.sweep()
			case <-w.stopChan:
				zap.L().Info("cleanup worker stopped")
				return
			}
		}
	}()
}

// Stop stops the cleanup loop
func (w *CleanupWorker) Stop() {
	close(w.stopChan)
}

func (w *CleanupWorker) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := w.accounts.ClearExpired(ctx, time.Now()); err != nil {
		zap.L().Error("failed to clear expired credentials", zap.Error(err))
		return
	}

	zap.L().Debug("expired pending credentials cleared")
}
