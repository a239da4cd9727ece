package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"cvneat/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	expirationSweeperJob *ExpirationSweeperJob
}

// NewJobManager creates a job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	expireOrdersHandler commands.ExpireOrdersCommandHandler,
	sweepSchedule string,
	orderExpiration time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		expirationSweeperJob: NewExpirationSweeperJob(
			expireOrdersHandler, sweepSchedule, orderExpiration, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.expirationSweeperJob.Start(); err != nil {
		return fmt.Errorf("failed to start expiration sweeper job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.expirationSweeperJob.Stop()
}
