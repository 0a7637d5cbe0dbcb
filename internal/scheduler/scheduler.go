// Package scheduler runs the periodic maintenance tasks of the API process.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"ergasia-marketplace/pkg/logger"
)

// Task is one unit of periodic work.
type Task func(ctx context.Context) error

// Scheduler wraps robfig/cron and logs every run.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
}

// New returns a scheduler whose runs are bounded by timeout.
func New(timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		timeout: timeout,
	}
}

// Add registers task under a cron spec such as "@every 5m".
func (s *Scheduler) Add(ctx context.Context, name, spec string, task Task) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(ctx, name, task)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc %s: %w", name, err)
	}
	logger.Log.Info("Scheduled task registered", "task", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Log.Info("Scheduler started", "tasks", len(s.cron.Entries()))
}

// Stop prevents new runs and waits for running ones up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	logger.Log.Info("Scheduler stopped")
}

func (s *Scheduler) run(parent context.Context, name string, task Task) {
	ctx := parent
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := task(ctx); err != nil {
		logger.Log.Error("Scheduled task failed", "task", name, "error", err, "duration", time.Since(start))
		return
	}
	logger.Log.Debug("Scheduled task finished", "task", name, "duration", time.Since(start))
}
