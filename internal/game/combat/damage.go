package combat

import (
	"github.com/udisondev/maskborn/internal/model"
)

// Raw damage is rolled uniformly in [base*DamageSpreadMin, base*DamageSpreadMax].
const (
	DamageSpreadMin = 0.7
	DamageSpreadMax = 1.1
)

// ComputeDamage resolves one physical hit.
//
// Order of rolls:
//  1. evasion: roll < evasion is a miss, FinalDamage = 0, nothing else is rolled
//  2. raw damage in [0.7×base, 1.1×base]
//  3. crit: roll < critChance multiplies raw damage by critMultiplier
//  4. armor: raw × (1 − clamp01(armor/100)), never negative
//  5. life steal: independent roll < lifeStealRate sets IsLifeSteal
//
// The resolver never heals; the caller decides what IsLifeSteal means.
// Armor of 100 or more zeroes the damage but does not suppress the crit
// and life steal rolls.
func ComputeDamage(rng model.Random, baseDamage, critChance, critMultiplier, armor, evasion, lifeStealRate float64) model.DamageResult {
	var result model.DamageResult

	if rng.Float64() < evasion {
		result.IsMiss = true
		return result
	}

	damage := model.RandRange(rng, baseDamage*DamageSpreadMin, baseDamage*DamageSpreadMax)

	if rng.Float64() < critChance {
		damage *= critMultiplier
		result.IsCrit = true
	}

	result.FinalDamage = max(0, damage*ArmorFactor(armor))

	if rng.Float64() < lifeStealRate {
		result.IsLifeSteal = true
	}

	return result
}

// ArmorFactor returns the share of damage left after flat-rate armor mitigation.
func ArmorFactor(armor float64) float64 {
	return 1 - model.Clamp01(armor/100)
}

// Attack describes the attacker side of a hit.
type Attack struct {
	Damage         float64
	CritChance     float64
	CritMultiplier float64
	LifeStealRate  float64
}

// Defense describes the defender side of a hit.
type Defense struct {
	Armor   float64
	Evasion float64
}

// Defender is implemented by actors with armor and evasion.
// Targets without it are hit as if both were zero.
type Defender interface {
	Defense() Defense
}

// Resolver binds ComputeDamage to a random source.
type Resolver struct {
	rng model.Random
}

// NewResolver creates a resolver.
func NewResolver(rng model.Random) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve computes the outcome of atk against def.
func (r *Resolver) Resolve(atk Attack, def Defense) model.DamageResult {
	return ComputeDamage(r.rng, atk.Damage, atk.CritChance, atk.CritMultiplier, def.Armor, def.Evasion, atk.LifeStealRate)
}

// Random returns the resolver's random source.
func (r *Resolver) Random() model.Random {
	return r.rng
}

// DefenseOf returns the defense of target, zero if it has none.
func DefenseOf(target model.Damageable) Defense {
	if d, ok := target.(Defender); ok {
		return d.Defense()
	}
	return Defense{}
}
