package jobs_test

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"butler/internal/core/domain/model/robot"
	"butler/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observerSpy struct {
	mu        sync.Mutex
	snapshots []robot.Snapshot
}

func (o *observerSpy) ObserveSession(s robot.Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.snapshots = append(o.snapshots, s)
}

func (o *observerSpy) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.snapshots)
}

func (o *observerSpy) last() robot.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.snapshots[len(o.snapshots)-1]
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStatusReportJob_Report(t *testing.T) {
	// Given
	session := robot.NewSession()
	_, err := session.PlaceOrders([]string{"table1", "table2"})
	require.NoError(t, err)
	spy := &observerSpy{}
	job := jobs.NewStatusReportJob(session, spy, "* * * * * *", quietLogger())

	// When
	job.Report()

	// Then
	require.Equal(t, 1, spy.count())
	assert.Equal(t, robot.Idle, spy.last().State)
	assert.Equal(t, []string{"table1", "table2"}, spy.last().Queue)
}

func TestStatusReportJob_RunsOnSchedule(t *testing.T) {
	// Given
	spy := &observerSpy{}
	job := jobs.NewStatusReportJob(robot.NewSession(), spy, "* * * * * *", quietLogger())

	// When
	require.NoError(t, job.Start())
	defer job.Stop()

	// Then
	assert.Eventually(t, func() bool { return spy.count() > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestStatusReportJob_InvalidSchedule(t *testing.T) {
	job := jobs.NewStatusReportJob(robot.NewSession(), &observerSpy{}, "every minute", quietLogger())

	assert.Error(t, job.Start())
}

func TestJobManager_StartAllFailsOnInvalidSchedule(t *testing.T) {
	jm := jobs.NewJobManager(robot.NewSession(), &observerSpy{}, "not a schedule", quietLogger())

	err := jm.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status report job")
}
