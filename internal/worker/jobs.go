package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"switchyard.app/platform/common/logger"
)

// Job is a function run on a fixed interval by the Scheduler.
type Job struct {
	Name     string
	Interval time.Duration
	// RunOnStart runs the job once before the first tick.
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// Scheduler runs periodic jobs, one goroutine per job. Runs of the same
// job never overlap: a tick that arrives while the job is running is dropped.
type Scheduler struct {
	jobs []Job

	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func NewScheduler(jobs ...Job) *Scheduler {
	return &Scheduler{jobs: jobs, stopCh: make(chan struct{})}
}

func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		if job.Interval <= 0 || job.Run == nil {
			slog.WarnContext(ctx, "skipping invalid job", "job", job.Name)
			continue
		}
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
}

func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stopCh) })
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	defer s.wg.Done()

	ctx = logger.WithLogFields(ctx, logger.LogFields{Component: "switchyard.worker.jobs"})
	slog.InfoContext(ctx, "job scheduled", "job", job.Name, "interval", job.Interval)

	if job.RunOnStart {
		s.runOnce(ctx, job)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	span := logger.StartSpan(ctx, "job."+job.Name)
	defer span.End()

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(span.Context(), "panic recovered in job", "job", job.Name, "panic", r)
		}
	}()

	if err := job.Run(span.Context()); err != nil {
		span.Fail(err)
		slog.ErrorContext(span.Context(), "job failed", "job", job.Name, "error", err)
		return
	}
	slog.DebugContext(span.Context(), "job finished",
		"job", job.Name,
		"duration_ms", time.Since(start).Milliseconds())
}
