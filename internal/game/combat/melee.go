package combat

import (
	"time"

	"github.com/udisondev/maskborn/internal/model"
)

// meleeSwing tracks the single in-flight player swing.
type meleeSwing struct {
	active   bool
	hitDone  bool
	elapsed  time.Duration
	duration time.Duration
}

func (s *meleeSwing) reset() {
	*s = meleeSwing{}
}

// Attacking reports whether a swing is in flight.
func (p *Player) Attacking() bool {
	return p.swing.active
}

// Attack starts a melee swing at the best target.
// Returns false while a swing is in flight, when dead, or when nothing is in range.
func (p *Player) Attack() bool {
	if p.dead || p.swing.active {
		return false
	}
	target := BestTarget(p.query, p.pos, p.facing, p.cfg.DetectionRange)
	if target == nil {
		return false
	}
	p.FaceTowards(target.Position())

	cur := p.stats.Current()
	duration := p.cfg.MeleeTimeout
	if cur.AttackSpeed > 0 {
		duration = time.Duration(float64(time.Second) / cur.AttackSpeed)
	}
	duration = max(duration, p.cfg.MeleeHitDelay)
	if p.cfg.MeleeTimeout > 0 {
		duration = min(duration, p.cfg.MeleeTimeout)
	}

	p.swing = meleeSwing{active: true, duration: duration}
	p.fx.Anim.PlayAttack(p.cfg.ObjectID)
	return true
}

// PerformAttack resolves the swing's damage. Safe to call from an animation
// event; a swing deals damage at most once.
func (p *Player) PerformAttack() int {
	if !p.swing.active || p.swing.hitDone {
		return 0
	}
	p.swing.hitDone = true
	return p.strike()
}

// ResetAttack completes the swing.
func (p *Player) ResetAttack() {
	p.swing.reset()
}

func (p *Player) tickMelee(dt time.Duration) {
	if !p.swing.active {
		return
	}
	p.swing.elapsed += dt
	if !p.swing.hitDone && p.swing.elapsed >= p.cfg.MeleeHitDelay {
		p.PerformAttack()
	}
	if p.swing.elapsed >= p.swing.duration {
		p.ResetAttack()
	}
}

// strike hits every enemy within attack range and returns how many were hit.
func (p *Player) strike() int {
	if p.query == nil {
		return 0
	}
	cur := p.stats.Current()
	atk := Attack{
		Damage:         cur.Damage,
		CritChance:     cur.CritChance,
		CritMultiplier: cur.CritMultiplier,
		LifeStealRate:  cur.LifeStealRate,
	}

	hit := 0
	for _, enemy := range p.query.QuerySphere(p.pos, cur.AttackRange, model.LayerEnemy) {
		if enemy == nil || enemy.IsDead() {
			continue
		}
		result := p.resolver.Resolve(atk, DefenseOf(enemy))
		enemy.TakeDamage(result)
		hit++
		p.fx.Effects.PlayEffect(EffectHit, enemy.Position(), p.facing, 0)

		if result.IsLifeSteal && result.FinalDamage > 0 && cur.LifeSteal > 0 {
			p.Heal(result.FinalDamage * cur.LifeSteal)
		}
	}
	return hit
}
