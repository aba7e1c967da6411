package ai

import (
	"log/slog"
	"time"
)

// attackDriver paces melee swings while the enemy is in Attack.
type attackDriver interface {
	// enter resets pacing when Attack is entered.
	enter()
	// tick advances the driver; true means leave Attack for Move.
	tick(dt time.Duration) bool
	// tickCooldown advances the cooldown outside Attack.
	tickCooldown(dt time.Duration)
	// ready reports whether a new swing may start.
	ready() bool
	// inFlight reports whether a swing is waiting for completion.
	inFlight() bool
	animationHit()
	animationComplete()
	// cancel drops the in-flight swing. Idempotent.
	cancel()
}

// timerDriver swings every AttackSpeed of accumulated Attack time. The hit
// lands with the swing if the target is still in range; the enemy leaves
// Attack after a swing that found the target out of range.
type timerDriver struct {
	e     *Enemy
	timer time.Duration
}

func newTimerDriver(e *Enemy) *timerDriver {
	return &timerDriver{e: e}
}

func (d *timerDriver) enter() {
	d.timer = 0
}

func (d *timerDriver) tick(dt time.Duration) bool {
	d.timer += dt
	interval := d.e.tpl.AttackSpeed
	for d.timer >= interval {
		d.timer -= interval
		d.e.fx.Anim.PlayAttack(d.e.id)
		if !d.e.strike() {
			return true
		}
	}
	return false
}

func (d *timerDriver) tickCooldown(time.Duration) {}
func (d *timerDriver) ready() bool                { return true }
func (d *timerDriver) inFlight() bool             { return false }
func (d *timerDriver) animationHit()              {}
func (d *timerDriver) animationComplete()         {}

func (d *timerDriver) cancel() {
	d.timer = 0
}

// cooldownDriver keeps at most one swing in flight. A swing completes on the
// animation events, on HitDelay when no animation collaborator delivers them,
// or on the AttackTimeout watchdog. A cooldown of AttackSpeed follows.
type cooldownDriver struct {
	e        *Enemy
	swinging bool
	hitDone  bool
	elapsed  time.Duration
	cooldown time.Duration
}

func newCooldownDriver(e *Enemy) *cooldownDriver {
	return &cooldownDriver{e: e}
}

func (d *cooldownDriver) enter() {}

func (d *cooldownDriver) tick(dt time.Duration) bool {
	if d.swinging {
		d.elapsed += dt
		switch {
		case !d.e.opts.AnimationEvents && d.elapsed >= d.e.tpl.HitDelay:
			d.animationHit()
			d.complete()
		case d.elapsed >= d.e.tpl.AttackTimeout:
			slog.Warn("enemy attack did not complete in time, forcing completion",
				"objectID", d.e.id,
				"timeout", d.e.tpl.AttackTimeout)
			d.complete()
		}
		if d.swinging {
			return false
		}
	} else {
		d.tickCooldown(dt)
	}

	if !d.e.inAttackRange() || d.cooldown > 0 {
		return true
	}
	d.start()
	return false
}

func (d *cooldownDriver) start() {
	d.swinging = true
	d.hitDone = false
	d.elapsed = 0
	d.e.fx.Anim.PlayAttack(d.e.id)
}

func (d *cooldownDriver) complete() {
	d.swinging = false
	d.elapsed = 0
	d.cooldown = d.e.tpl.AttackSpeed
}

func (d *cooldownDriver) tickCooldown(dt time.Duration) {
	if !d.swinging && d.cooldown > 0 {
		d.cooldown = max(0, d.cooldown-dt)
	}
}

func (d *cooldownDriver) ready() bool {
	return !d.swinging && d.cooldown <= 0
}

func (d *cooldownDriver) inFlight() bool {
	return d.swinging
}

func (d *cooldownDriver) animationHit() {
	if !d.swinging || d.hitDone {
		return
	}
	d.hitDone = true
	d.e.strike()
}

func (d *cooldownDriver) animationComplete() {
	if d.swinging {
		d.complete()
	}
}

func (d *cooldownDriver) cancel() {
	if d.swinging {
		d.complete()
	}
}

// OnAttackHit delivers the attack animation's hit event.
func (e *Enemy) OnAttackHit() {
	if e.destroyed || e.machine.Current() != StateAttack {
		return
	}
	e.attack.animationHit()
}

// OnAttackComplete delivers the attack animation's end event.
func (e *Enemy) OnAttackComplete() {
	if e.destroyed || e.machine.Current() != StateAttack {
		return
	}
	e.attack.animationComplete()
}

// AttackInFlight reports whether a swing awaits completion.
func (e *Enemy) AttackInFlight() bool {
	return e.attack.inFlight()
}
