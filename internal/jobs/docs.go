// Package jobs provides scheduled background tasks for the production
// order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ProductionAlertJob - Periodically derives overdue, due-today and
// unresolved-issue alerts from the current order snapshot and logs them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(getAlertsHandler, "*/5 * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The alert job logs sweep failures and keeps running; a failed sweep does
// not stop the schedule.
package jobs
