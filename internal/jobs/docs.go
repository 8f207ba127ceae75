// Package jobs provides scheduled background tasks for the purchasing service.
//
// Jobs are cron based (github.com/robfig/cron/v3, seconds-enabled specs).
//
// # Available Jobs
//
// 1. ConfirmationRetryJob - re-fires Confirm on Pending orders so paid orders
// advance and unpaid table-engine orders walk towards auto-cancel.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(retryHandler, "*/30 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		return fmt.Errorf("failed to start jobs: %w", err)
//	}
//	defer jobManager.StopAll()
//
// An empty schedule disables the job.
//
// # Error Handling
//
// Job failures are logged and never stop the scheduler.
package jobs
