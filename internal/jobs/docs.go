// Package jobs provides scheduled background tasks for the orders service.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(purgeHandler, "@every 1h", 30*24*time.Hour, logger)
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// CartCleanupJob removes shopping cart entries that have not been updated within the configured TTL.
// Each run executes in its own unit of work.
package jobs
