package area

import (
	"log/slog"

	"github.com/udisondev/maskborn/internal/model"
)

// Damage from area effects is scaled by a uniform roll in this range.
const (
	DamageRollMin = 0.8
	DamageRollMax = 1.0
)

// DamageApplier hits every damageable on Mask within Radius of Center.
// Magnitudes are final: crit, evasion and armor do not apply, and the query
// radius is the only distance bound.
type DamageApplier struct {
	Query  model.SpatialQuery
	Rng    model.Random
	Center model.Vec3
	Radius float64
	Mask   model.Layer

	// OnHit is called after each applied hit. Optional.
	OnHit func(target model.Damageable, result model.DamageResult)
}

// Apply implements Applier.
func (a *DamageApplier) Apply(magnitude float64) {
	if a.Query == nil {
		return
	}
	if a.Rng == nil {
		slog.Warn("area damage without random source, skipping")
		return
	}
	for _, target := range a.Query.QuerySphere(a.Center, a.Radius, a.Mask) {
		if target == nil {
			continue
		}
		result := model.DamageResult{
			FinalDamage: magnitude * model.RandRange(a.Rng, DamageRollMin, DamageRollMax),
		}
		target.TakeDamage(result)
		if a.OnHit != nil {
			a.OnHit(target, result)
		}
	}
}

// Healable can receive heals from an area.
type Healable interface {
	Position() model.Vec3
	Heal(amount float64) float64
}

// HealApplier heals Target when it stands within Radius of Center.
type HealApplier struct {
	Target Healable
	Center model.Vec3
	Radius float64
}

// Apply implements Applier.
func (a *HealApplier) Apply(magnitude float64) {
	if a.Target == nil {
		return
	}
	if a.Target.Position().Distance(a.Center) <= a.Radius {
		a.Target.Heal(magnitude)
	}
}
