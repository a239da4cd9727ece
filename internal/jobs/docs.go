// Package jobs provides scheduled background tasks for the order lifecycle.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ExpirationSweeperJob - Cancels ready orders no courier claimed within the
// expiration window. Runs on a configurable cron schedule (default every
// minute).
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(expireOrdersHandler, "0 * * * * *", 30*time.Minute, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The sweeper logs failures and keeps its schedule; a failed run is retried
// naturally on the next tick because candidates stay in the database until a
// guarded update cancels them.
package jobs
