// Package scheduler runs the periodic odds feed refresh.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

var (
	ErrRunning = errors.New("scheduler is already running")
	ErrNoJobs  = errors.New("no jobs scheduled")
	ErrNoJob   = errors.New("no such job")
)

// Refresher is a job that refreshes cached state.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler manages cron-scheduled refresh jobs
type Scheduler struct {
	cron            *cron.Cron
	logger          *logrus.Entry
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	jobs            map[string]cron.Job
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler. Overlapping runs of the same job are
// skipped.
func NewScheduler(log *logrus.Logger) *Scheduler {
	entry := log.WithField("component", "scheduler")
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(entry))),
		),
		logger:          entry,
		jobIDs:          make([]cron.EntryID, 0),
		jobs:            make(map[string]cron.Job),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleRefresh runs r on the standard five-field cron expression. Each run
// gets its own context bounded by timeout.
func (s *Scheduler) ScheduleRefresh(name, cronExpression string, r Refresher, timeout time.Duration) (cron.EntryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return 0, fmt.Errorf("cannot schedule %s: %w", name, ErrRunning)
	}

	if _, exists := s.jobs[name]; exists {
		return 0, fmt.Errorf("job %s is already scheduled", name)
	}

	job := cron.FuncJob(s.job(name, r, timeout))
	entryID, err := s.cron.AddJob(cronExpression, job)
	if err != nil {
		return 0, fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	// Out-of-schedule runs share the skip-if-still-running guard.
	s.jobs[name] = s.cron.Entry(entryID).WrappedJob
	s.logger.WithFields(logrus.Fields{
		"job":      name,
		"schedule": cronExpression,
	}).Info("Scheduled refresh job")

	return entryID, nil
}

func (s *Scheduler) job(name string, r Refresher, timeout time.Duration) func() {
	return func() {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		start := time.Now()
		log := s.logger.WithField("job", name)
		if err := r.Refresh(ctx); err != nil {
			log.WithError(err).WithField("duration", time.Since(start)).Warn("Refresh job finished with errors")
			return
		}
		log.WithField("duration", time.Since(start)).Debug("Refresh job completed")
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return ErrRunning
	}
	if len(s.jobIDs) == 0 {
		return ErrNoJobs
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop stops the scheduler and waits for running jobs, up to the graceful
// timeout.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler jobs still running after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns the time of the next scheduled job run, or the zero time
// when the scheduler is stopped.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	var next time.Time
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (next.IsZero() || entry.Next.Before(next)) {
			next = entry.Next
		}
	}
	return next
}

// RunNow runs the named job once, outside its schedule, and returns when it
// finishes. A run already in progress is not duplicated.
func (s *Scheduler) RunNow(name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNoJob, name)
	}
	job.Run()
	return nil
}
