package skill

import (
	"log/slog"
	"time"

	"github.com/udisondev/maskborn/internal/game/area"
	"github.com/udisondev/maskborn/internal/game/combat"
	"github.com/udisondev/maskborn/internal/model"
)

// castFunc builds the effect of one skill and drops it into the world.
// It returns false when a required collaborator is missing and nothing was cast.
type castFunc func(s *Skill, env Env) bool

// registry maps skill id → activation. Kept as an explicit table so that the
// set of skills is testable and a missing id is a setup error.
var registry = map[model.SkillID]castFunc{
	model.SkillHealingTotem: castHealingTotem,
	model.SkillFoxSagent:    castFoxSagent,
	model.SkillShurikenFan:  castShurikenFan,
}

// Registered reports whether id has an activation.
func Registered(id model.SkillID) bool {
	_, ok := registry[id]
	return ok
}

// DefaultRadius is used when a template leaves Radius at zero.
const DefaultRadius = 3.0

// FoxSagentLifetime is how long the fox carrier stays in the world.
const FoxSagentLifetime = 7 * time.Second

// Carriers are lifted above the ground point they are spawned at.
var carrierLift = model.Vec3{Y: 0.5}

func (s *Skill) radius() float64 {
	if s.tpl.Radius > 0 {
		return s.tpl.Radius
	}
	return DefaultRadius
}

func (s *Skill) visual() string {
	if s.tpl.VisualEffect != "" {
		return s.tpl.VisualEffect
	}
	return s.tpl.ID.String()
}

func ready(s *Skill, env Env, needRng bool) bool {
	if env.Caster == nil || env.Carriers == nil {
		slog.Warn("skill used without caster or effect manager", "skill", s.tpl.ID)
		return false
	}
	if needRng && env.Rng == nil {
		slog.Warn("damage skill used without random source", "skill", s.tpl.ID)
		return false
	}
	return true
}

func (s *Skill) damageApplier(env Env, center model.Vec3) *area.DamageApplier {
	return &area.DamageApplier{
		Query:  env.Query,
		Rng:    env.Rng,
		Center: center,
		Radius: s.radius(),
		Mask:   model.LayerEnemy,
	}
}

// castFoxSagent summons the fox at the closest enemy, or at the caster when
// no enemy is in range: a short damage-over-time burst followed by a strike.
func castFoxSagent(s *Skill, env Env) bool {
	if !ready(s, env, true) {
		return false
	}
	base := env.Caster.Current().Damage
	scale := ScalingFactor(s.level)
	configs := []area.Config{
		{
			Kind:      area.Continuous,
			Delay:     2 * time.Second,
			Duration:  1500 * time.Millisecond,
			Interval:  200 * time.Millisecond,
			Magnitude: base * s.tpl.EffectMultiplier / 2 * scale,
		},
		{
			Kind:      area.OneShot,
			Delay:     4 * time.Second,
			Magnitude: base * s.tpl.EffectMultiplier * scale,
		},
	}

	pos := env.Caster.Position()
	detection := env.DetectionRange
	if detection <= 0 {
		detection = combat.DefaultDetectionRange
	}
	if closest := combat.ClosestEnemy(env.Query, pos, detection); closest != nil {
		pos = closest.Position().Add(carrierLift)
	}

	c := env.Carriers.Spawn(s.visual(), pos, env.Caster.Facing())
	c.Play(s.damageApplier(env, pos), configs, FoxSagentLifetime)
	return true
}

// castShurikenFan throws a fan of shurikens around the caster, facing forward.
func castShurikenFan(s *Skill, env Env) bool {
	if !ready(s, env, true) {
		return false
	}
	cfg := area.Config{
		Kind:      area.Continuous,
		Delay:     80 * time.Millisecond,
		Duration:  1500 * time.Millisecond,
		Interval:  300 * time.Millisecond,
		Magnitude: s.Magnitude(env.Caster.Current().Damage),
	}
	pos := env.Caster.Position().Add(carrierLift)
	c := env.Carriers.Spawn(s.visual(), pos, env.Caster.Facing().Flat())
	c.Play(s.damageApplier(env, pos), []area.Config{cfg}, 0)
	return true
}

// castHealingTotem plants a totem under the caster that heals while the
// caster stays within its radius.
func castHealingTotem(s *Skill, env Env) bool {
	if !ready(s, env, false) {
		return false
	}
	cfg := area.Config{
		Kind:      area.Continuous,
		Delay:     500 * time.Millisecond,
		Duration:  8 * time.Second,
		Interval:  time.Second,
		Magnitude: s.Magnitude(env.Caster.Current().HpRegen),
	}
	pos := env.Caster.Position()
	c := env.Carriers.Spawn(s.visual(), pos, env.Caster.Facing())
	c.Play(&area.HealApplier{Target: env.Caster, Center: pos, Radius: s.radius()}, []area.Config{cfg}, 0)
	return true
}
