package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/loss-valuation/internal/metrics"
	"github.com/donaldgifford/loss-valuation/internal/store"
)

// Scheduled job names, as recorded in job_runs and scheduler_locks.
const (
	JobRevalueStale = "revalue_stale"
	JobCacheSweep   = "cache_sweep"
)

const staleJobRunAge = 2 * time.Hour

// Scheduler manages periodic stale revaluation and cache sweep tasks.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	store  store.Store
	log    *slog.Logger
	holder string

	revalueInterval time.Duration
	sweepInterval   time.Duration

	revalueEntryID cron.EntryID
	sweepEntryID   cron.EntryID
}

// NewScheduler creates a new Scheduler that runs engine tasks on a schedule.
func NewScheduler(
	eng *Engine,
	s store.Store,
	revalueInterval time.Duration,
	sweepInterval time.Duration,
	log *slog.Logger,
) (*Scheduler, error) {
	c := cron.New()

	sched := &Scheduler{
		cron:            c,
		engine:          eng,
		store:           s,
		log:             log,
		holder:          uuid.NewString(),
		revalueInterval: revalueInterval,
		sweepInterval:   sweepInterval,
	}

	var err error
	sched.revalueEntryID, err = c.AddFunc("@every "+revalueInterval.String(), sched.runRevalue)
	if err != nil {
		return nil, err
	}

	sched.sweepEntryID, err = c.AddFunc("@every "+sweepInterval.String(), sched.runSweep)
	if err != nil {
		return nil, err
	}

	return sched, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started", "holder", s.holder)
	s.cron.Start()
	s.SyncNextRunTimestamps()
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SyncNextRunTimestamps publishes the next run time of each job.
func (s *Scheduler) SyncNextRunTimestamps() {
	if next := s.cron.Entry(s.revalueEntryID).Next; !next.IsZero() {
		metrics.SchedulerNextRevalueTimestamp.Set(float64(next.Unix()))
	}
	if next := s.cron.Entry(s.sweepEntryID).Next; !next.IsZero() {
		metrics.SchedulerNextSweepTimestamp.Set(float64(next.Unix()))
	}
}

// RecoverStaleJobRuns marks runs left "running" by a crashed process.
func (s *Scheduler) RecoverStaleJobRuns(ctx context.Context) {
	n, err := s.store.RecoverStaleJobRuns(ctx, staleJobRunAge)
	if err != nil {
		s.log.Error("recovering stale job runs", "error", err)
		return
	}
	if n > 0 {
		s.log.Warn("marked stale job runs as crashed", "count", n)
	}
}

func (s *Scheduler) runRevalue() {
	ctx := context.Background()
	s.log.Info("scheduled revaluation starting")
	err := s.runJob(ctx, JobRevalueStale, s.revalueInterval, func(ctx context.Context) (int, error) {
		n, err := s.engine.RevalueStale(ctx)
		s.engine.SyncStateMetrics(ctx)
		return n, err
	})
	if err != nil {
		s.log.Error("scheduled revaluation failed", "error", err)
	}
	s.SyncNextRunTimestamps()
}

func (s *Scheduler) runSweep() {
	ctx := context.Background()
	err := s.runJob(ctx, JobCacheSweep, s.sweepInterval, func(context.Context) (int, error) {
		return s.engine.SweepCache(), nil
	})
	if err != nil {
		s.log.Error("scheduled cache sweep failed", "error", err)
	}
	s.SyncNextRunTimestamps()
}

// runJob runs fn under the job's distributed lock and records the run in
// job_runs. When another instance holds the lock the run is skipped.
func (s *Scheduler) runJob(
	ctx context.Context,
	name string,
	lockTTL time.Duration,
	fn func(context.Context) (int, error),
) error {
	acquired, err := s.store.AcquireSchedulerLock(ctx, name, s.holder, lockTTL)
	if err != nil {
		return err
	}
	if !acquired {
		s.log.Debug("job lock held elsewhere, skipping", "job", name)
		metrics.JobRunsTotal.WithLabelValues(name, "skipped").Inc()
		return nil
	}
	defer func() {
		if err := s.store.ReleaseSchedulerLock(ctx, name, s.holder); err != nil {
			s.log.Warn("releasing job lock", "job", name, "error", err)
		}
	}()

	runID, err := s.store.InsertJobRun(ctx, name)
	if err != nil {
		return err
	}

	start := time.Now()
	rows, jobErr := fn(ctx)
	metrics.JobDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())

	status, errText := "succeeded", ""
	if jobErr != nil {
		status, errText = "failed", jobErr.Error()
	}
	metrics.JobRunsTotal.WithLabelValues(name, status).Inc()

	if err := s.store.CompleteJobRun(ctx, runID, status, errText, rows); err != nil {
		s.log.Warn("recording job run", "job", name, "run", runID, "error", err)
	}

	s.log.Info("job finished", "job", name, "status", status, "rows", rows,
		"duration", time.Since(start))
	return jobErr
}
