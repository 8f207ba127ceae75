package jobs

import (
	"context"
	"log/slog"

	"purchasing/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ConfirmationRetryJob runs RetryPendingConfirmationsCommand on a cron schedule.
// Overlapping runs are skipped.
type ConfirmationRetryJob struct {
	handler  commands.RetryPendingConfirmationsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewConfirmationRetryJob(
	handler commands.RetryPendingConfirmationsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ConfirmationRetryJob {
	return &ConfirmationRetryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "confirmation_retry_job"),
	}
}

// Run executes one retry pass and returns how many orders Confirm was fired on.
func (j *ConfirmationRetryJob) Run(ctx context.Context) int {
	processed, err := j.handler.Handle(ctx, commands.NewRetryPendingConfirmationsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Confirmation retry job failed", "error", err, "processed", processed)
		return processed
	}

	if processed > 0 {
		j.logger.DebugContext(ctx, "Confirmation retry pass finished", "processed", processed)
	}
	return processed
}

// Start schedules the job. An invalid schedule is returned as an error.
func (j *ConfirmationRetryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Confirmation retry job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running pass to finish.
func (j *ConfirmationRetryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Confirmation retry job stopped")
}
