// Package skill implements the player's cooldown-gated abilities.
// Each skill builds area effect configs scaled by the caster's stats and
// its level, then drops a pooled carrier that runs them.
package skill

import (
	"fmt"
	"time"

	"github.com/udisondev/maskborn/internal/event"
	"github.com/udisondev/maskborn/internal/game/effect"
	"github.com/udisondev/maskborn/internal/model"
)

// Caster is the actor using a skill.
type Caster interface {
	Position() model.Vec3
	Facing() model.Vec3
	Current() model.CharacterStats
	Heal(amount float64) float64
}

// Env carries the collaborators a skill needs at activation time.
type Env struct {
	Caster         Caster
	Query          model.SpatialQuery
	Rng            model.Random
	Carriers       *effect.Manager
	DetectionRange float64
}

// Skill is one ability instance owned by a player session.
type Skill struct {
	tpl      model.SkillTemplate
	cast     castFunc
	level    int
	cooldown *event.Value[time.Duration]
}

// ScalingFactor returns the level multiplier: level × (1 + (level−1)×0.1).
func ScalingFactor(level int) float64 {
	l := float64(level)
	return l * (1 + (l-1)*0.1)
}

// New creates a level 1 skill from its template via the registry.
func New(tpl model.SkillTemplate) (*Skill, error) {
	cast, ok := registry[tpl.ID]
	if !ok {
		return nil, fmt.Errorf("no skill registered for id %s", tpl.ID)
	}
	return &Skill{
		tpl:      tpl,
		cast:     cast,
		level:    1,
		cooldown: event.NewValue[time.Duration](0),
	}, nil
}

func (s *Skill) ID() model.SkillID                     { return s.tpl.ID }
func (s *Skill) Template() model.SkillTemplate         { return s.tpl }
func (s *Skill) Level() int                            { return s.level }
func (s *Skill) Remaining() time.Duration              { return s.cooldown.Get() }
func (s *Skill) Cooldown() *event.Value[time.Duration] { return s.cooldown }

// CanUse reports whether the cooldown has elapsed.
func (s *Skill) CanUse() bool {
	return s.cooldown.Get() <= 0
}

// TryUse activates the skill. It returns false without side effects while on
// cooldown or when env lacks a collaborator the cast needs.
// The cooldown is the template's and does not shrink with level.
func (s *Skill) TryUse(env Env) bool {
	if !s.CanUse() {
		return false
	}
	if !s.cast(s, env) {
		return false
	}
	s.cooldown.Set(s.tpl.Cooldown)
	return true
}

// UpdateCooldown decreases the remaining cooldown, never below zero.
func (s *Skill) UpdateCooldown(dt time.Duration) {
	cur := s.cooldown.Get()
	if cur <= 0 {
		return
	}
	s.cooldown.Set(max(0, cur-dt))
}

// Upgrade raises the level by one. The level cap is enforced by the shop.
func (s *Skill) Upgrade() {
	s.level++
}

// SetLevel restores a saved level. Levels below 1 become 1.
func (s *Skill) SetLevel(level int) {
	s.level = max(1, level)
}

// ResetCooldown clears the remaining cooldown.
func (s *Skill) ResetCooldown() {
	s.cooldown.Set(0)
}

// Magnitude returns base × EffectMultiplier × ScalingFactor(level).
func (s *Skill) Magnitude(base float64) float64 {
	return base * s.tpl.EffectMultiplier * ScalingFactor(s.level)
}
