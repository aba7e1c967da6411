// Package area runs timed area effects: damage over time, one-shot bursts
// and healing auras share one timer engine parameterized by an Applier.
package area

import (
	"log/slog"
	"time"
)

// Kind selects how an effect fires.
type Kind int8

const (
	// Continuous fires every Interval for Duration after the delay.
	Continuous Kind = iota
	// OneShot fires once when the delay elapses.
	OneShot
)

func (k Kind) String() string {
	if k == OneShot {
		return "one_shot"
	}
	return "continuous"
}

// Config describes one scheduled effect.
type Config struct {
	Kind      Kind
	Delay     time.Duration // before the first tick
	Duration  time.Duration // Continuous only
	Interval  time.Duration // Continuous only
	Magnitude float64       // damage or heal amount
}

// Applier performs the effect with the configured magnitude.
type Applier interface {
	Apply(magnitude float64)
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(magnitude float64)

// Apply calls f.
func (f ApplierFunc) Apply(magnitude float64) { f(magnitude) }

type instance struct {
	cfg       Config
	delay     time.Duration
	elapsed   time.Duration
	remaining time.Duration
	active    bool
	finished  bool
}

// Engine runs a set of independent effect instances.
type Engine struct {
	applier   Applier
	instances []*instance
	running   bool
}

// NewEngine creates an idle engine.
func NewEngine(applier Applier) *Engine {
	return &Engine{applier: applier}
}

// SetApplier replaces the applier. Used when a pooled carrier is reused.
func (e *Engine) SetApplier(applier Applier) {
	e.applier = applier
}

// Initialize discards previous instances and arms configs from a cold state.
// Continuous configs without a positive interval or duration are skipped.
func (e *Engine) Initialize(configs []Config) {
	e.instances = e.instances[:0]
	for i, cfg := range configs {
		if cfg.Kind == Continuous && (cfg.Interval <= 0 || cfg.Duration <= 0) {
			slog.Warn("skipping area effect with invalid timing",
				"index", i,
				"interval", cfg.Interval,
				"duration", cfg.Duration)
			continue
		}
		e.instances = append(e.instances, &instance{
			cfg:       cfg,
			delay:     max(0, cfg.Delay),
			remaining: cfg.Duration,
		})
	}
	e.running = len(e.instances) > 0
}

// Update advances every active instance by dt.
func (e *Engine) Update(dt time.Duration) {
	if !e.running {
		return
	}
	unfinished := 0
	for _, inst := range e.instances {
		if !e.running {
			return
		}
		if inst.finished {
			continue
		}
		e.advance(inst, dt)
		if !inst.finished {
			unfinished++
		}
	}
	if unfinished == 0 {
		e.Stop()
	}
}

func (e *Engine) advance(inst *instance, dt time.Duration) {
	if !inst.active {
		if inst.delay > dt {
			inst.delay -= dt
			return
		}
		dt -= inst.delay
		inst.delay = 0
		inst.active = true

		if inst.cfg.Kind == OneShot {
			e.apply(inst.cfg.Magnitude)
			inst.finished = true
			return
		}
	}

	inst.elapsed += dt
	for inst.elapsed >= inst.cfg.Interval && e.running {
		e.apply(inst.cfg.Magnitude)
		inst.elapsed -= inst.cfg.Interval
	}
	inst.remaining -= dt
	if inst.remaining <= 0 {
		inst.finished = true
	}
}

func (e *Engine) apply(magnitude float64) {
	if e.applier != nil {
		e.applier.Apply(magnitude)
	}
}

// Stop cancels all instances immediately. Idempotent.
func (e *Engine) Stop() {
	e.running = false
	for _, inst := range e.instances {
		inst.finished = true
	}
}

// IsRunning reports whether any instance is unfinished.
func (e *Engine) IsRunning() bool {
	return e.running
}
