// Package present declares the presentation collaborators the combat core
// talks to: visual effects, floating combat text, health bars, animation.
// The core never depends on how they are rendered.
package present

import (
	"time"

	"github.com/udisondev/maskborn/internal/model"
)

// Handle identifies a playing visual effect.
type Handle uint64

// DisplayHandle identifies a registered health bar.
type DisplayHandle uint64

// EffectPlayer plays visual effects. Fire-and-forget.
type EffectPlayer interface {
	PlayEffect(id string, pos, facing model.Vec3, duration time.Duration) Handle
	StopEffect(h Handle)
}

// DamageText shows floating combat text.
type DamageText interface {
	ShowDamageText(pos model.Vec3, amount float64, kind model.TextKind)
}

// HealthDisplay manages health bars above actors.
type HealthDisplay interface {
	RegisterDisplay(objectID uint32, maxHealth, heightOffset float64) DisplayHandle
	UpdateDisplay(h DisplayHandle, current, max float64)
	UnregisterDisplay(h DisplayHandle)
}

// Animator triggers actor animations.
type Animator interface {
	PlayAttack(objectID uint32)
	PlayDeath(objectID uint32)
}

// Collaborators bundles all presentation dependencies.
type Collaborators struct {
	Effects EffectPlayer
	Text    DamageText
	Health  HealthDisplay
	Anim    Animator
}

// WithDefaults replaces nil collaborators with Nop.
func (c Collaborators) WithDefaults() Collaborators {
	if c.Effects == nil {
		c.Effects = Nop{}
	}
	if c.Text == nil {
		c.Text = Nop{}
	}
	if c.Health == nil {
		c.Health = Nop{}
	}
	if c.Anim == nil {
		c.Anim = Nop{}
	}
	return c
}

// Nop discards every call.
type Nop struct{}

func (Nop) PlayEffect(string, model.Vec3, model.Vec3, time.Duration) Handle { return 0 }
func (Nop) StopEffect(Handle)                                               {}
func (Nop) ShowDamageText(model.Vec3, float64, model.TextKind)              {}
func (Nop) RegisterDisplay(uint32, float64, float64) DisplayHandle          { return 0 }
func (Nop) UpdateDisplay(DisplayHandle, float64, float64)                   {}
func (Nop) UnregisterDisplay(DisplayHandle)                                 {}
func (Nop) PlayAttack(uint32)                                               {}
func (Nop) PlayDeath(uint32)                                                {}
