// Package scheduler runs periodic background jobs on a robfig/cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Dispatcher sends reminders that are due at now.
type Dispatcher interface {
	DispatchDue(ctx context.Context, now time.Time, limit int) (int, error)
}

// ReminderJob dispatches due reminders on every tick.
type ReminderJob struct {
	dispatcher Dispatcher
	batch      int
	timeout    time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewReminderJob creates a job that dispatches at most batch reminders per run.
func NewReminderJob(d Dispatcher, batch int, timeout time.Duration, logger *zap.Logger) *ReminderJob {
	return &ReminderJob{dispatcher: d, batch: batch, timeout: timeout, logger: logger, now: time.Now}
}

// Run performs one dispatch pass. It implements cron.Job.
func (j *ReminderJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := j.now()
	sent, err := j.dispatcher.DispatchDue(ctx, start.UTC(), j.batch)
	if err != nil {
		j.logger.Error("Reminder dispatch failed", zap.Error(err))
		return
	}
	if sent > 0 {
		j.logger.Info("Reminders dispatched", zap.Int("sent", sent), zap.Duration("took", time.Since(start)))
	}
}

// cronLogger adapts zap to cron.Logger. Cron's info chatter goes to debug.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Scheduler wraps a cron instance. Every job it runs recovers from panics, and ticks that
// fire while the previous run of the same job is still going are skipped.
type Scheduler struct {
	cron   *cron.Cron
	chain  cron.Chain
	logger *zap.Logger
}

// New creates a Scheduler in UTC.
func New(logger *zap.Logger) *Scheduler {
	cl := cronLogger{s: logger.Named("cron").Sugar()}
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC), cron.WithLogger(cl)),
		chain:  cron.NewChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		logger: logger,
	}
}

// Add registers job on schedule, e.g. "@every 1m" or "*/5 * * * *".
func (s *Scheduler) Add(schedule string, job cron.Job) error {
	if _, err := s.cron.AddJob(schedule, s.chain.Then(job)); err != nil {
		return fmt.Errorf("failed to schedule %q: %w", schedule, err)
	}
	s.logger.Info("Job scheduled", zap.String("schedule", schedule))
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops the scheduler and waits for running jobs to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
	}
}
