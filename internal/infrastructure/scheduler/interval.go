package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"CompetitorScout/internal/ports"
)

// Interval runs a job on a fixed period. A tick that arrives while the
// previous run is still executing is skipped, so a batch that outlasts its
// own trigger interval never overlaps itself.
type Interval struct {
	name   string
	every  time.Duration
	logger *slog.Logger
	stop   chan struct{}
	busy   atomic.Bool
}

var _ ports.Scheduler = (*Interval)(nil)

// NewInterval builds a named driver with the given period.
func NewInterval(name string, every time.Duration, logger *slog.Logger) *Interval {
	return &Interval{name: name, every: every, logger: logger}
}

// Start begins ticking; a second Start on a running driver is a no-op.
func (s *Interval) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if s.stop != nil {
		return nil
	}

	s.stop = make(chan struct{})
	go func() {
		ticker := time.NewTicker(s.every)
		defer ticker.Stop()
		for {
			select {
			case t := <-ticker.C:
				if !s.busy.CompareAndSwap(false, true) {
					s.warn("previous run still in progress, skipping tick", "job", s.name)
					continue
				}
				go func(t time.Time) {
					defer s.busy.Store(false)
					job(t)
				}(t)
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine. In-flight runs finish on their own.
func (s *Interval) Stop(ctx context.Context) error {
	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}

func (s *Interval) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
