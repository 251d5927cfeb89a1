// Package workers hosts the background loops: subscription expiry, payment
// reconciliation, and refresh-token cleanup.
package workers

import (
	"context"
	"time"

	"chefhire_backend/internal/logger"
	"chefhire_backend/internal/services"
)

const subscriptionSweepInterval = time.Hour

// SubscriptionWorker periodically expires subscriptions whose window has
// closed and downgrades owners with no remaining active window.
type SubscriptionWorker struct {
	subs services.SubscriptionService
}

func NewSubscriptionWorker(subs services.SubscriptionService) *SubscriptionWorker {
	return &SubscriptionWorker{subs: subs}
}

// Run blocks until ctx is cancelled. One sweep runs immediately on start.
func (w *SubscriptionWorker) Run(ctx context.Context) {
	logger.Info("subscription worker started", "interval", subscriptionSweepInterval.String())

	w.sweep(ctx)

	ticker := time.NewTicker(subscriptionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SubscriptionWorker) sweep(ctx context.Context) {
	expired, err := w.subs.ExpireDue(ctx)
	logger.WorkerLog("subscription", "expire_due", err)
	if err == nil && expired > 0 {
		logger.Info("expired subscriptions", "count", expired)
	}
}
