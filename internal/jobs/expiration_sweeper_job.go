package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cvneat/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpirationSweeperJob periodically cancels ready orders no courier claimed
// within the expiration window. The sweep itself is race-safe: each candidate
// goes through a guarded update that backs off when a courier claimed the
// order between listing and cancelling, so the job can run as often as wanted.
type ExpirationSweeperJob struct {
	handler    commands.ExpireOrdersCommandHandler
	expiration time.Duration
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewExpirationSweeperJob creates the sweep job. The schedule is a cron
// expression with a seconds field; expiration is how long a ready order may
// wait unclaimed before it is cancelled.
func NewExpirationSweeperJob(
	handler commands.ExpireOrdersCommandHandler,
	schedule string,
	expiration time.Duration,
	logger *slog.Logger,
) *ExpirationSweeperJob {
	return &ExpirationSweeperJob{
		handler:    handler,
		expiration: expiration,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "expiration_sweeper_job"),
	}
}

// Start schedules the sweep.
func (j *ExpirationSweeperJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewExpireOrdersCommand(j.expiration)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Expiration sweep misconfigured", "error", cmdErr)
			return
		}

		cancelled, sweepErr := j.handler.Handle(ctx, cmd)
		if sweepErr != nil {
			j.logger.ErrorContext(ctx, "Expiration sweep failed", "error", sweepErr)
			return
		}

		// An empty sweep is the normal case and not worth a log line.
		if cancelled > 0 {
			j.logger.InfoContext(ctx, "Expired unclaimed orders cancelled", "count", cancelled)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule expiration sweep: %w", err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiration sweeper started",
		"schedule", j.schedule, "expiration", j.expiration)
	return nil
}

// Stop stops the sweep. Does not wait for an in-flight run.
func (j *ExpirationSweeperJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiration sweeper stopped")
}
