package jobs

import (
	"context"
	"log/slog"

	"butler/internal/core/application/usecases/queries"
	"butler/internal/core/domain/model/robot"

	"github.com/robfig/cron/v3"
)

// SessionObserver receives periodic snapshots of the robot session.
type SessionObserver interface {
	ObserveSession(snapshot robot.Snapshot)
}

// StatusReportJob periodically logs the robot status and refreshes the session
// gauges of the observer.
type StatusReportJob struct {
	source   queries.StatusSource
	observer SessionObserver
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStatusReportJob creates the job. schedule is a cron expression with a
// leading seconds field, e.g. "*/10 * * * * *".
func NewStatusReportJob(
	source queries.StatusSource,
	observer SessionObserver,
	schedule string,
	logger *slog.Logger,
) *StatusReportJob {
	return &StatusReportJob{
		source:   source,
		observer: observer,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "status_report_job"),
	}
}

// Start schedules the report. It returns an error for an invalid schedule.
func (j *StatusReportJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Report); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Status report job started", "schedule", j.schedule)
	return nil
}

// Report takes one snapshot, logs it and hands it to the observer.
func (j *StatusReportJob) Report() {
	s := j.source.Snapshot()
	j.observer.ObserveSession(s)

	// Idle with nothing queued is the common case; keep it out of info logs.
	level := slog.LevelInfo
	if s.State == robot.Idle && len(s.Queue) == 0 {
		level = slog.LevelDebug
	}
	j.logger.Log(context.Background(), level, "Robot status",
		"state", s.State.String(),
		"goal", s.Goal,
		"queue", s.Queue,
		"cycle_id", s.CycleID.String(),
		"cancel_pending", s.CancelPending,
	)
}

// Stop stops the job and waits for a running report to finish.
func (j *StatusReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Status report job stopped")
}
