package jobs

import (
	"fmt"
	"log/slog"

	"purchasing/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	confirmationRetryJob *ConfirmationRetryJob
	logger               *slog.Logger
}

// NewJobManager creates the job manager. An empty retrySchedule leaves the
// confirmation retry job disabled.
func NewJobManager(
	retryHandler commands.RetryPendingConfirmationsCommandHandler,
	retrySchedule string,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{logger: logger.With("component", "job_manager")}
	if retrySchedule != "" {
		jm.confirmationRetryJob = NewConfirmationRetryJob(retryHandler, retrySchedule, logger)
	}
	return jm
}

// StartAll starts all enabled jobs.
func (jm *JobManager) StartAll() error {
	if jm.confirmationRetryJob == nil {
		jm.logger.Info("Confirmation retry job disabled")
		return nil
	}

	if err := jm.confirmationRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start confirmation retry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.confirmationRetryJob != nil {
		jm.confirmationRetryJob.Stop()
	}
}
