package combat

import (
	"log/slog"
	"time"

	"github.com/udisondev/maskborn/internal/event"
	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/present"
)

// Visual effect ids played by the player.
const (
	EffectHeal = "heal"
	EffectHit  = "hit_1"
)

// PlayerConfig holds player tuning that is not a character stat.
type PlayerConfig struct {
	ObjectID        uint32
	Position        model.Vec3
	RegenInterval   time.Duration
	MeleeHitDelay   time.Duration // swing start to damage
	MeleeTimeout    time.Duration // watchdog for a swing that never completes
	DetectionRange  float64
	HealthBarOffset float64
}

// DefaultPlayerConfig returns default player tuning.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		ObjectID:        1,
		RegenInterval:   time.Second,
		MeleeHitDelay:   300 * time.Millisecond,
		MeleeTimeout:    2 * time.Second,
		DetectionRange:  DefaultDetectionRange,
		HealthBarOffset: 2,
	}
}

// Player is the player actor: stat sheet, health, melee, currencies.
// Its stats are mutated only by itself and by upgrade purchases.
type Player struct {
	cfg      PlayerConfig
	pos      model.Vec3
	facing   model.Vec3
	stats    *model.StatSheet
	resolver *Resolver
	query    model.SpatialQuery
	fx       present.Collaborators
	display  present.DisplayHandle

	coins      *event.Value[int]
	experience *event.Value[int]
	died       event.Signal[model.Vec3]
	dead       bool

	regenElapsed time.Duration
	swing        meleeSwing
}

// NewPlayer creates a player at full health.
func NewPlayer(cfg PlayerConfig, base model.CharacterStats, resolver *Resolver, query model.SpatialQuery, fx present.Collaborators) *Player {
	if cfg.RegenInterval <= 0 {
		cfg.RegenInterval = time.Second
	}
	if cfg.DetectionRange <= 0 {
		cfg.DetectionRange = DefaultDetectionRange
	}
	p := &Player{
		cfg:        cfg,
		pos:        cfg.Position,
		facing:     model.Vec3{Z: 1},
		stats:      model.NewStatSheet(base),
		resolver:   resolver,
		query:      query,
		fx:         fx.WithDefaults(),
		coins:      event.NewValue(0),
		experience: event.NewValue(0),
	}
	p.display = p.fx.Health.RegisterDisplay(cfg.ObjectID, p.stats.MaxHealth(), cfg.HealthBarOffset)
	return p
}

func (p *Player) ObjectID() uint32        { return p.cfg.ObjectID }
func (p *Player) Position() model.Vec3    { return p.pos }
func (p *Player) Facing() model.Vec3      { return p.facing }
func (p *Player) Layer() model.Layer      { return model.LayerPlayer }
func (p *Player) IsDead() bool            { return p.dead }
func (p *Player) Stats() *model.StatSheet { return p.stats }

// SetPosition moves the player.
func (p *Player) SetPosition(pos model.Vec3) {
	p.pos = pos
}

// FaceTowards turns the player towards pos around the vertical axis.
func (p *Player) FaceTowards(pos model.Vec3) {
	dir := pos.Sub(p.pos).Flat()
	if dir.Length() > 0 {
		p.facing = dir.Normalized()
	}
}

// Current returns effective stats.
func (p *Player) Current() model.CharacterStats {
	return p.stats.Current()
}

// Defense implements Defender.
func (p *Player) Defense() Defense {
	cur := p.stats.Current()
	return Defense{Armor: cur.Armor, Evasion: cur.Evasion}
}

// Coins returns the observable coin balance.
func (p *Player) Coins() *event.Value[int] {
	return p.coins
}

// Experience returns the observable experience total.
func (p *Player) Experience() *event.Value[int] {
	return p.experience
}

// Died is emitted once, with the death position.
func (p *Player) Died() *event.Signal[model.Vec3] {
	return &p.died
}

// AddCoins credits n coins.
func (p *Player) AddCoins(n int) {
	if n <= 0 {
		return
	}
	p.coins.Set(p.coins.Get() + n)
}

// SpendCoins debits n coins if the balance allows it.
func (p *Player) SpendCoins(n int) bool {
	if n < 0 || p.coins.Get() < n {
		return false
	}
	p.coins.Set(p.coins.Get() - n)
	return true
}

// AddExperience credits experience and shows the floating text.
func (p *Player) AddExperience(n int) {
	if n <= 0 {
		return
	}
	p.experience.Set(p.experience.Get() + n)
	p.fx.Text.ShowDamageText(p.pos, float64(n), model.TextExp)
}

// ReceiveAttack resolves an incoming hit against the player's armor and evasion.
// Attackers never steal life from the player.
func (p *Player) ReceiveAttack(atk Attack) model.DamageResult {
	if p.dead {
		return model.DamageResult{}
	}
	atk.LifeStealRate = 0
	result := p.resolver.Resolve(atk, p.Defense())
	p.TakeDamage(result)
	return result
}

// TakeDamage applies an already-resolved hit.
func (p *Player) TakeDamage(result model.DamageResult) {
	if p.dead {
		return
	}
	if result.IsMiss {
		p.fx.Text.ShowDamageText(p.pos, 0, model.TextMiss)
		return
	}
	p.stats.SetCurrentHealth(p.stats.CurrentHealth() - result.FinalDamage)
	p.fx.Health.UpdateDisplay(p.display, p.stats.CurrentHealth(), p.stats.MaxHealth())
	p.fx.Text.ShowDamageText(p.pos, result.FinalDamage, result.TextKind())

	if p.stats.CurrentHealth() <= 0 {
		p.die()
	}
}

func (p *Player) die() {
	p.dead = true
	p.swing.reset()
	p.fx.Anim.PlayDeath(p.cfg.ObjectID)
	slog.Info("player died", "objectID", p.cfg.ObjectID, "coins", p.coins.Get(), "experience", p.experience.Get())
	p.died.Emit(p.pos)
}

// Heal restores health, shows heal text and plays the heal effect.
// Returns the amount restored.
func (p *Player) Heal(amount float64) float64 {
	if p.dead || amount <= 0 {
		return 0
	}
	restored := p.restore(amount)
	p.fx.Text.ShowDamageText(p.pos, amount, model.TextHeal)
	p.fx.Effects.PlayEffect(EffectHeal, p.pos, p.facing, 0)
	return restored
}

func (p *Player) restore(amount float64) float64 {
	before := p.stats.CurrentHealth()
	p.stats.SetCurrentHealth(before + amount)
	p.fx.Health.UpdateDisplay(p.display, p.stats.CurrentHealth(), p.stats.MaxHealth())
	return p.stats.CurrentHealth() - before
}

// Tick advances regeneration and the melee swing.
func (p *Player) Tick(dt time.Duration) {
	if p.dead {
		return
	}
	p.regenElapsed += dt
	for p.regenElapsed >= p.cfg.RegenInterval {
		p.regenElapsed -= p.cfg.RegenInterval
		if regen := p.stats.Current().HpRegen; regen > 0 {
			p.restore(regen)
		}
	}
	p.tickMelee(dt)
}

// Revive restores the player to full health after a game over.
func (p *Player) Revive() {
	p.dead = false
	p.regenElapsed = 0
	p.swing.reset()
	p.stats.SetCurrentHealth(p.stats.MaxHealth())
	p.fx.Health.UpdateDisplay(p.display, p.stats.CurrentHealth(), p.stats.MaxHealth())
}
