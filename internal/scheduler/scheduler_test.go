package scheduler

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopReloader struct{}

func (noopReloader) Reload(ctx context.Context) error { return nil }

func newTestScheduler() *Scheduler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewScheduler(log)
}

func TestSchedulerLifecycle(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.ScheduleReload("0 3 * * *", noopReloader{}))

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.False(t, s.NextRun().IsZero())

	assert.Error(t, s.Start(), "double start must fail")
	assert.Error(t, s.ScheduleReload("0 4 * * *", noopReloader{}), "cannot schedule while running")

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.True(t, s.NextRun().IsZero())

	// Stopping twice is harmless.
	s.Stop()
}

func TestSchedulerRejectsBadCron(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.ScheduleReload("every day at 3", noopReloader{}))
}

func TestSchedulerStartWithoutJobs(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.Start())
}
