// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order lifecycle.
//
// # Available Jobs
//
// 1. PaymentTimeoutJob - Runs every minute to cancel orders whose payment
// never arrived within the configured timeout
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(cancelTimedOutHandler, 15*time.Minute, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The payment timeout job uses the cron expression "0 * * * * *", meaning it
// runs at the top of every minute. Minute granularity is plenty: the timeout
// itself is measured in minutes, so a sweep can only ever be one minute late.
//
// # Error Handling
//
// - Orders that changed state between listing and locking are skipped
// - Per-order failures are logged and do not stop the rest of the sweep
// - Failed job starts are reported to the caller
package jobs
