package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeDispatcher struct {
	calls   atomic.Int32
	block   chan struct{}
	lastNow time.Time
	limit   int
	err     error
}

func (f *fakeDispatcher) DispatchDue(ctx context.Context, now time.Time, limit int) (int, error) {
	f.calls.Add(1)
	f.lastNow, f.limit = now, limit
	if f.block != nil {
		<-f.block
	}
	return 1, f.err
}

func TestReminderJob_Run(t *testing.T) {
	d := &fakeDispatcher{}
	job := NewReminderJob(d, 25, time.Second, zaptest.NewLogger(t))
	fixed := time.Date(2024, 2, 14, 8, 0, 0, 0, time.FixedZone("X", 3600))
	job.now = func() time.Time { return fixed }

	job.Run()

	assert.EqualValues(t, 1, d.calls.Load())
	assert.Equal(t, 25, d.limit)
	assert.Equal(t, time.UTC, d.lastNow.Location())
	assert.True(t, d.lastNow.Equal(fixed))
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	d := &fakeDispatcher{block: make(chan struct{})}
	s := New(zaptest.NewLogger(t))
	job := s.chain.Then(NewReminderJob(d, 10, time.Second, zaptest.NewLogger(t)))

	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()
	require.Eventually(t, func() bool { return d.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	job.Run()
	assert.EqualValues(t, 1, d.calls.Load())

	close(d.block)
	<-done
	job.Run()
	assert.EqualValues(t, 2, d.calls.Load())
}

func TestScheduler_RecoversPanickingJob(t *testing.T) {
	s := New(zaptest.NewLogger(t))
	job := s.chain.Then(cron.FuncJob(func() { panic("boom") }))
	assert.NotPanics(t, job.Run)
}

func TestReminderJob_ErrorIsLogged(t *testing.T) {
	d := &fakeDispatcher{err: errors.New("firestore unavailable")}
	job := NewReminderJob(d, 10, time.Second, zaptest.NewLogger(t))
	assert.NotPanics(t, job.Run)
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	s := New(zaptest.NewLogger(t))
	err := s.Add("not a schedule", NewReminderJob(&fakeDispatcher{}, 1, time.Second, zaptest.NewLogger(t)))
	assert.Error(t, err)
}

func TestScheduler_RunsJob(t *testing.T) {
	d := &fakeDispatcher{}
	s := New(zaptest.NewLogger(t))
	require.NoError(t, s.Add("@every 1s", NewReminderJob(d, 1, time.Second, zaptest.NewLogger(t))))
	s.Start()
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool { return d.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}
