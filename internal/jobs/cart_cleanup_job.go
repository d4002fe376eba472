package jobs

import (
	"context"
	"time"

	"ordersapi/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type staleCartPurger interface {
	Handle(ctx context.Context, cmd commands.PurgeStaleCartsCommand) (int64, error)
}

// CartCleanupJob periodically purges stale cart entries.
type CartCleanupJob struct {
	handler  staleCartPurger
	schedule string
	ttl      time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
	now      func() time.Time
}

// NewCartCleanupJob accepts any schedule understood by cron.ParseStandard, including "@every 1h".
func NewCartCleanupJob(handler staleCartPurger, schedule string, ttl time.Duration, logger *zap.Logger) *CartCleanupJob {
	return &CartCleanupJob{
		handler:  handler,
		schedule: schedule,
		ttl:      ttl,
		cron:     cron.New(),
		logger:   logger.With(zap.String("component", "cart_cleanup_job")),
		now:      time.Now,
	}
}

func (j *CartCleanupJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Cart cleanup job started", zap.String("schedule", j.schedule), zap.Duration("ttl", j.ttl))
	return nil
}

// Run performs one purge. Failures are logged; the next tick retries.
func (j *CartCleanupJob) Run() {
	ctx := context.Background()
	cmd, err := commands.NewPurgeStaleCartsCommand(j.ttl, j.now())
	if err != nil {
		j.logger.Error("Cart cleanup job misconfigured", zap.Error(err))
		return
	}

	removed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("Cart cleanup job failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("Stale cart entries removed", zap.Int64("removed", removed), zap.Time("cutoff", cmd.Cutoff()))
	}
}

// Stop waits for a running purge to finish.
func (j *CartCleanupJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Cart cleanup job stopped")
}
