package jobs

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	cartCleanupJob *CartCleanupJob
}

func NewJobManager(
	purgeHandler staleCartPurger,
	cartCleanupSchedule string,
	cartTTL time.Duration,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		cartCleanupJob: NewCartCleanupJob(purgeHandler, cartCleanupSchedule, cartTTL, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.cartCleanupJob.Start(); err != nil {
		return fmt.Errorf("failed to start cart cleanup job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.cartCleanupJob.Stop()
}
