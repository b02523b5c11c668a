// Package jobs provides scheduled background tasks for the butler robot.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules carry a leading seconds field.
//
// # Available Jobs
//
// 1. StatusReportJob - logs the robot state, goal and queue and refreshes the
// session gauges exported on /metrics
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(session, recorder, "*/10 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("Failed to start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An invalid schedule fails StartAll. Reports themselves cannot fail.
package jobs
