package workers

import (
	"context"
	"time"

	"chefhire_backend/internal/logger"
	"chefhire_backend/internal/services"
)

const paymentSweepInterval = time.Minute

// PaymentWorker backstops lost gateway callbacks: it periodically asks the
// provider about stale PENDING orders and finishes the ones that moved.
type PaymentWorker struct {
	subs services.SubscriptionService
}

func NewPaymentWorker(subs services.SubscriptionService) *PaymentWorker {
	return &PaymentWorker{subs: subs}
}

func (w *PaymentWorker) Run(ctx context.Context) {
	logger.Info("payment worker started", "interval", paymentSweepInterval.String())

	ticker := time.NewTicker(paymentSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("payment worker stopped")
			return
		case <-ticker.C:
			moved, err := w.subs.ReconcilePending(ctx)
			logger.WorkerLog("payment", "reconcile_pending", err)
			if err == nil && moved > 0 {
				logger.Info("reconciled payment orders", "count", moved)
			}
		}
	}
}
