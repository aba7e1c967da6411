// Package effect manages pooled carriers for positioned area effects.
// A carrier is the transient actor a skill drops into the world: it plays a
// visual effect and runs an area.Engine until its lifetime runs out.
package effect

import (
	"time"

	"github.com/udisondev/maskborn/internal/game/area"
	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/present"
)

// Carrier is a pooled area-effect actor.
type Carrier struct {
	owner  *Manager
	visual string

	engine   *area.Engine
	pos      model.Vec3
	facing   model.Vec3
	lifetime time.Duration
	handle   present.Handle
	playing  bool
}

func newCarrier(owner *Manager, visual string) *Carrier {
	return &Carrier{
		owner:  owner,
		visual: visual,
		engine: area.NewEngine(nil),
	}
}

func (c *Carrier) Visual() string           { return c.visual }
func (c *Carrier) Position() model.Vec3     { return c.pos }
func (c *Carrier) Facing() model.Vec3       { return c.facing }
func (c *Carrier) Engine() *area.Engine     { return c.engine }
func (c *Carrier) Remaining() time.Duration { return c.lifetime }

// Play starts the visual effect and arms the engine.
// The carrier returns to its pool once lifetime elapses and the engine has
// stopped. A zero lifetime means "until the engine stops".
func (c *Carrier) Play(applier area.Applier, configs []area.Config, lifetime time.Duration) {
	c.engine.SetApplier(applier)
	c.engine.Initialize(configs)
	c.lifetime = lifetime
	c.playing = true
	c.handle = c.owner.fx.PlayEffect(c.visual, c.pos, c.facing, lifetime)
}

// Update advances the engine and the lifetime.
func (c *Carrier) Update(dt time.Duration) {
	if !c.playing {
		return
	}
	c.engine.Update(dt)
	if c.lifetime > 0 {
		c.lifetime -= dt
	}
	if c.lifetime <= 0 && !c.engine.IsRunning() {
		c.ReturnToPool()
	}
}

// ReturnToPool stops the carrier and hands it back to its pool. Idempotent.
func (c *Carrier) ReturnToPool() {
	c.owner.release(c)
}

func (c *Carrier) reset() {
	c.engine.Stop()
	c.engine.SetApplier(nil)
	c.lifetime = 0
	c.playing = false
}
