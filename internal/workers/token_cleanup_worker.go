package workers

import (
	"context"
	"time"

	"chefhire_backend/internal/logger"
	"chefhire_backend/internal/repositories"
)

const tokenSweepInterval = 6 * time.Hour

// TokenCleanupWorker removes expired refresh tokens.
type TokenCleanupWorker struct {
	users repositories.UserRepository
}

func NewTokenCleanupWorker(users repositories.UserRepository) *TokenCleanupWorker {
	return &TokenCleanupWorker{users: users}
}

func (w *TokenCleanupWorker) Run(ctx context.Context) {
	logger.Info("token cleanup worker started", "interval", tokenSweepInterval.String())

	ticker := time.NewTicker(tokenSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token cleanup worker stopped")
			return
		case <-ticker.C:
			removed, err := w.users.CleanExpiredRefreshTokens()
			logger.WorkerLog("token_cleanup", "clean_expired", err)
			if err == nil && removed > 0 {
				logger.Info("removed expired refresh tokens", "count", removed)
			}
		}
	}
}
