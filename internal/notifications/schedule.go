package notifications

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler fires a sweep function on a fixed interval, with one immediate
// run at start. It holds no global state; the owner constructs it, starts it
// with `go`, and stops it by cancelling the context.
type Scheduler struct {
	interval time.Duration
	run      func(context.Context)
	logger   *slog.Logger
}

// NewScheduler creates a scheduler for run at the given interval.
func NewScheduler(interval time.Duration, run func(context.Context), logger *slog.Logger) *Scheduler {
	return &Scheduler{interval: interval, run: run, logger: logger}
}

// Start runs once immediately, then on every tick. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Payment sweep scheduler started", "interval", s.interval)

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.run(ctx)
		case <-ctx.Done():
			s.logger.Info("Payment sweep scheduler stopped")
			return
		}
	}
}
