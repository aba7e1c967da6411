package ai

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/looplab/fsm"

	"github.com/udisondev/maskborn/internal/event"
	"github.com/udisondev/maskborn/internal/game/combat"
	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/present"
)

// DefaultDeathDelay is how long a dead enemy stays before it is destroyed.
const DefaultDeathDelay = 5 * time.Second

// Target is what an enemy chases and hits.
type Target interface {
	Position() model.Vec3
	IsDead() bool
	ReceiveAttack(atk combat.Attack) model.DamageResult
}

// destroyable is implemented by targets that can vanish without dying.
type destroyable interface {
	Destroyed() bool
}

// DeathInfo is emitted once when an enemy enters Die.
type DeathInfo struct {
	ObjectID   uint32
	EnemyID    string
	Experience int
	CoinDrop   int
	Position   model.Vec3
}

// EnemyOptions tune an enemy beyond its template.
type EnemyOptions struct {
	// DeathDelay before self-destruction; DefaultDeathDelay if zero.
	DeathDelay time.Duration
	// AnimationEvents means OnAttackHit/OnAttackComplete are delivered by an
	// animation collaborator. Without them the cooldown driver synthesizes
	// both at the template's HitDelay.
	AnimationEvents bool
}

// Enemy is the per-enemy state machine: Idle, Move, Attack, Hitted, Die.
// Health is mutated only through TakeDamage.
type Enemy struct {
	id      uint32
	tpl     *model.EnemyTemplate
	opts    EnemyOptions
	pos     model.Vec3
	facing  model.Vec3
	health  *model.Health
	machine *fsm.FSM
	target  Target
	fx      present.Collaborators
	display present.DisplayHandle
	attack  attackDriver

	hitRemaining     time.Duration
	destroyRemaining time.Duration
	diedEmitted      bool
	destroyed        bool
	started          bool
	targetLost       bool

	died         event.Signal[DeathInfo]
	destroyedSig event.Signal[uint32]
}

// NewEnemy creates an enemy at pos chasing target. tpl must be validated.
func NewEnemy(objectID uint32, tpl *model.EnemyTemplate, pos model.Vec3, target Target, fx present.Collaborators, opts EnemyOptions) *Enemy {
	if opts.DeathDelay <= 0 {
		opts.DeathDelay = DefaultDeathDelay
	}
	e := &Enemy{
		id:      objectID,
		tpl:     tpl,
		opts:    opts,
		pos:     pos,
		facing:  model.Vec3{Z: 1},
		health:  model.NewHealth(tpl.MaxHealth),
		machine: newEnemyMachine(),
		target:  target,
		fx:      fx.WithDefaults(),
	}
	switch tpl.AttackMode {
	case model.AttackModeCooldown:
		e.attack = newCooldownDriver(e)
	default:
		e.attack = newTimerDriver(e)
	}
	return e
}

func (e *Enemy) ObjectID() uint32               { return e.id }
func (e *Enemy) Template() *model.EnemyTemplate { return e.tpl }
func (e *Enemy) Position() model.Vec3           { return e.pos }
func (e *Enemy) Facing() model.Vec3             { return e.facing }
func (e *Enemy) Layer() model.Layer             { return model.LayerEnemy }
func (e *Enemy) Health() *model.Health          { return e.health }
func (e *Enemy) State() string                  { return e.machine.Current() }
func (e *Enemy) Destroyed() bool                { return e.destroyed }

// IsDead reports whether health reached zero, even before Die is entered.
func (e *Enemy) IsDead() bool {
	return e.health.IsDead()
}

// IsDestroyed is an alias of Destroyed used by the world registry.
func (e *Enemy) IsDestroyed() bool {
	return e.destroyed
}

// Defense implements combat.Defender.
func (e *Enemy) Defense() combat.Defense {
	return combat.Defense{Armor: e.tpl.Armor, Evasion: e.tpl.Evasion}
}

// Died is emitted exactly once when the enemy enters Die.
func (e *Enemy) Died() *event.Signal[DeathInfo] {
	return &e.died
}

// OnDestroyed is emitted when the enemy is removed, with or without dying.
func (e *Enemy) OnDestroyed() *event.Signal[uint32] {
	return &e.destroyedSig
}

// SetPosition teleports the enemy.
func (e *Enemy) SetPosition(pos model.Vec3) {
	e.pos = pos
}

// SetTarget replaces the chase target. nil leaves the enemy idle.
func (e *Enemy) SetTarget(target Target) {
	e.target = target
	e.targetLost = false
}

// Start registers the health bar.
func (e *Enemy) Start() {
	if e.started {
		return
	}
	e.started = true
	e.display = e.fx.Health.RegisterDisplay(e.id, e.tpl.MaxHealth, e.tpl.HealthBarOffset)
}

// Stop cancels the in-flight attack. Idempotent.
func (e *Enemy) Stop() {
	e.attack.cancel()
}

// TakeDamage applies a resolved hit. Death is entered on the next tick by the
// global transition, not here.
func (e *Enemy) TakeDamage(result model.DamageResult) {
	if e.destroyed || e.health.IsDead() {
		return
	}
	if result.IsMiss {
		e.fx.Text.ShowDamageText(e.pos, 0, model.TextMiss)
		return
	}

	e.health.TakeDamage(result.FinalDamage)
	e.fx.Health.UpdateDisplay(e.display, e.health.Current(), e.health.Max())
	e.fx.Text.ShowDamageText(e.pos, result.FinalDamage, result.TextKind())

	if e.health.IsDead() || e.tpl.HitReaction <= 0 {
		return
	}
	if e.fire(EventHit) {
		e.attack.cancel()
		e.hitRemaining = e.tpl.HitReaction
	}
}

// Heal restores health unless the enemy is dead.
func (e *Enemy) Heal(amount float64) float64 {
	if e.destroyed {
		return 0
	}
	restored := e.health.Heal(amount)
	if restored > 0 {
		e.fx.Health.UpdateDisplay(e.display, e.health.Current(), e.health.Max())
	}
	return restored
}

// Tick runs the global death transition, then the current state's logic.
func (e *Enemy) Tick(dt time.Duration) {
	if e.destroyed {
		return
	}

	if e.health.IsDead() && e.machine.Current() != StateDie {
		e.enterDie()
	}

	switch e.machine.Current() {
	case StateDie:
		e.tickDie(dt)
	case StateHitted:
		e.tickHitted(dt)
	case StateIdle:
		e.tickIdle(dt)
	case StateMove:
		e.tickMove(dt)
	case StateAttack:
		e.tickAttack(dt)
	}
}

// fire triggers a state machine event. Rejected events are not errors for
// the caller: the state simply does not change.
func (e *Enemy) fire(name string) bool {
	err := e.machine.Event(context.Background(), name)
	if err == nil {
		return true
	}
	var invalid fsm.InvalidEventError
	if !errors.As(err, &invalid) {
		slog.Warn("enemy transition failed",
			"objectID", e.id,
			"event", name,
			"state", e.machine.Current(),
			"error", err)
	}
	return false
}

// validTarget reports whether the target can be chased. Logs once when lost.
func (e *Enemy) validTarget() bool {
	ok := e.target != nil && !e.target.IsDead()
	if ok {
		if d, isD := e.target.(destroyable); isD && d.Destroyed() {
			ok = false
		}
	}
	if !ok && !e.targetLost {
		e.targetLost = true
		slog.Warn("enemy target is no longer valid, going idle", "objectID", e.id, "state", e.machine.Current())
	}
	if ok {
		e.targetLost = false
	}
	return ok
}

func (e *Enemy) inAttackRange() bool {
	return e.pos.Distance(e.target.Position()) <= e.tpl.AttackRange
}

func (e *Enemy) faceTarget() {
	dir := e.target.Position().Sub(e.pos).Flat()
	if dir.Length() > 0 {
		e.facing = dir.Normalized()
	}
}

func (e *Enemy) tickIdle(dt time.Duration) {
	if !e.validTarget() {
		return
	}
	if e.inAttackRange() && e.attack.ready() {
		e.engage()
		e.tickAttack(dt)
		return
	}
	if e.fire(EventChase) {
		e.tickMove(dt)
	}
}

func (e *Enemy) tickMove(dt time.Duration) {
	if !e.validTarget() {
		e.fire(EventHalt)
		return
	}
	e.attack.tickCooldown(dt)
	e.faceTarget()

	if e.inAttackRange() {
		if e.attack.ready() {
			e.engage()
		}
		return
	}

	step := e.tpl.MoveSpeed * dt.Seconds()
	e.pos = e.pos.MoveTowards(e.target.Position(), step)

	if IsDebugEnabled() {
		slog.Debug("enemy moved", "objectID", e.id, "x", e.pos.X, "z", e.pos.Z)
	}
}

func (e *Enemy) engage() {
	if e.fire(EventEngage) {
		e.attack.enter()
	}
}

func (e *Enemy) tickAttack(dt time.Duration) {
	if !e.validTarget() {
		e.attack.cancel()
		e.fire(EventHalt)
		return
	}
	e.faceTarget()
	if e.attack.tick(dt) {
		e.fire(EventChase)
	}
}

func (e *Enemy) tickHitted(dt time.Duration) {
	e.hitRemaining -= dt
	if e.hitRemaining <= 0 {
		e.hitRemaining = 0
		e.fire(EventRecover)
	}
}

// strike resolves one hit against the target if it is still in range.
func (e *Enemy) strike() bool {
	if e.health.IsDead() || !e.validTarget() || !e.inAttackRange() {
		return false
	}
	e.target.ReceiveAttack(combat.Attack{
		Damage:         e.tpl.MeleeDamage,
		CritChance:     e.tpl.CritChance,
		CritMultiplier: e.tpl.CritMultiplier,
	})
	return true
}

func (e *Enemy) enterDie() {
	if !e.fire(EventDie) {
		return
	}
	e.attack.cancel()
	e.hitRemaining = 0
	e.fx.Anim.PlayDeath(e.id)
	e.fx.Health.UnregisterDisplay(e.display)
	e.destroyRemaining = e.opts.DeathDelay

	if e.diedEmitted {
		return
	}
	e.diedEmitted = true
	if IsDebugEnabled() {
		slog.Debug("enemy died", "objectID", e.id, "enemy", e.tpl.ID)
	}
	e.died.Emit(DeathInfo{
		ObjectID:   e.id,
		EnemyID:    e.tpl.ID,
		Experience: e.tpl.ExperiencePoints,
		CoinDrop:   e.tpl.CoinDrop,
		Position:   e.pos,
	})
}

func (e *Enemy) tickDie(dt time.Duration) {
	e.destroyRemaining -= dt
	if e.destroyRemaining <= 0 {
		e.Destroy()
	}
}

// Destroy removes the enemy immediately. Used after the death delay and for
// forced cleanup on restart; a forced destroy does not emit Died.
func (e *Enemy) Destroy() {
	if e.destroyed {
		return
	}
	e.attack.cancel()
	if e.machine.Current() != StateDie {
		e.fx.Health.UnregisterDisplay(e.display)
	}
	e.destroyed = true
	e.destroyedSig.Emit(e.id)
	e.died.Clear()
	e.destroyedSig.Clear()
}
