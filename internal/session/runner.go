package session

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// ErrStopped is returned by Runner.Do once the tick loop has exited.
var ErrStopped = errors.New("runner stopped")

// RunnerConfig controls the tick loop.
type RunnerConfig struct {
	TickInterval time.Duration
	// Duration bounds simulated time; zero runs until the context ends,
	// the player dies or every wave is cleared.
	Duration time.Duration
	// Realtime paces ticks with a wall clock ticker instead of running
	// them back to back.
	Realtime bool
	// BeforeTick runs on the tick goroutine before every tick.
	BeforeTick func(s *Session)
}

// Runner drives a Session from a single goroutine.
type Runner struct {
	s       *Session
	cfg     RunnerConfig
	stopped chan struct{}
}

// NewRunner creates a runner for s.
func NewRunner(s *Session, cfg RunnerConfig) *Runner {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 100 * time.Millisecond
	}
	return &Runner{s: s, cfg: cfg, stopped: make(chan struct{})}
}

// Run ticks the session until the context is cancelled, the configured
// duration elapses, the player dies or all waves are cleared.
// Returns ctx.Err() on cancellation and nil otherwise.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.stopped)

	var ticker *time.Ticker
	if r.cfg.Realtime {
		ticker = time.NewTicker(r.cfg.TickInterval)
		defer ticker.Stop()
	}

	slog.Info("simulation started", "tick", r.cfg.TickInterval, "duration", r.cfg.Duration, "realtime", r.cfg.Realtime)
	for {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		if r.cfg.BeforeTick != nil {
			r.cfg.BeforeTick(r.s)
		}
		r.s.Tick(r.cfg.TickInterval)

		switch {
		case r.s.Over():
			slog.Info("simulation ended", "reason", "player died", "summary", r.s.Summary())
			return nil
		case r.s.Finished():
			slog.Info("simulation ended", "reason", "all waves cleared", "summary", r.s.Summary())
			return nil
		case r.cfg.Duration > 0 && r.s.Elapsed() >= r.cfg.Duration:
			slog.Info("simulation ended", "reason", "duration reached", "summary", r.s.Summary())
			return nil
		}
	}
}

// Stopped is closed when Run returns.
func (r *Runner) Stopped() <-chan struct{} {
	return r.stopped
}

// Do runs fn on the tick goroutine and waits for it to finish.
func (r *Runner) Do(ctx context.Context, fn func(s *Session)) error {
	done := make(chan struct{})
	if !r.s.Submit(func(s *Session) {
		defer close(done)
		fn(s)
	}) {
		return errors.New("command queue full")
	}
	select {
	case <-done:
		return nil
	case <-r.stopped:
		select {
		case <-done:
			return nil
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Inspect waits for Run to return, then calls fn with the session.
func (r *Runner) Inspect(fn func(s *Session)) {
	<-r.stopped
	fn(r.s)
}
