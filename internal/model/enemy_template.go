package model

import (
	"errors"
	"fmt"
	"time"
)

// AttackMode selects how an enemy paces its melee swings.
type AttackMode string

const (
	// AttackModeTimer accumulates tick time and swings every AttackSpeed.
	AttackModeTimer AttackMode = "timer"
	// AttackModeCooldown keeps at most one swing in flight, completed by
	// animation events or a watchdog, then waits a cooldown.
	AttackModeCooldown AttackMode = "cooldown"
)

// Default timings applied to templates that leave them unset.
const (
	DefaultAttackTimeout = 2 * time.Second
	DefaultHitDelay      = 300 * time.Millisecond
)

// EnemyTemplate is the static definition of an enemy kind.
type EnemyTemplate struct {
	ID               string        `yaml:"id"`
	Name             string        `yaml:"name"`
	MaxHealth        float64       `yaml:"max_health"`
	MoveSpeed        float64       `yaml:"move_speed"`
	MeleeDamage      float64       `yaml:"melee_damage"`
	AttackRange      float64       `yaml:"attack_range"`
	AttackSpeed      time.Duration `yaml:"attack_speed"` // time between swings
	CoinDrop         int           `yaml:"coin_drop"`
	ExperiencePoints int           `yaml:"experience"`
	HealthBarOffset  float64       `yaml:"health_bar_offset"`

	Armor          float64       `yaml:"armor"`
	Evasion        float64       `yaml:"evasion"`
	CritChance     float64       `yaml:"crit_chance"`
	CritMultiplier float64       `yaml:"crit_multiplier"`
	HitReaction    time.Duration `yaml:"hit_reaction"`
	AttackMode     AttackMode    `yaml:"attack_mode"`
	AttackTimeout  time.Duration `yaml:"attack_timeout"`
	HitDelay       time.Duration `yaml:"hit_delay"`
}

// ApplyDefaults fills optional fields left empty in data files.
func (t *EnemyTemplate) ApplyDefaults() {
	if t.Name == "" {
		t.Name = t.ID
	}
	if t.AttackMode == "" {
		t.AttackMode = AttackModeTimer
	}
	if t.CritMultiplier < 1 {
		t.CritMultiplier = 1
	}
	if t.AttackTimeout <= 0 {
		t.AttackTimeout = DefaultAttackTimeout
	}
	if t.HitDelay <= 0 {
		t.HitDelay = DefaultHitDelay
	}
}

// Validate checks the template for values the AI cannot run with.
func (t *EnemyTemplate) Validate() error {
	var errs []error
	if t.ID == "" {
		errs = append(errs, errors.New("id is empty"))
	}
	if t.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("max_health must be positive, got %v", t.MaxHealth))
	}
	if t.MoveSpeed < 0 {
		errs = append(errs, fmt.Errorf("move_speed must not be negative, got %v", t.MoveSpeed))
	}
	if t.AttackRange <= 0 {
		errs = append(errs, fmt.Errorf("attack_range must be positive, got %v", t.AttackRange))
	}
	if t.AttackSpeed <= 0 {
		errs = append(errs, fmt.Errorf("attack_speed must be positive, got %v", t.AttackSpeed))
	}
	if t.CoinDrop < 0 || t.ExperiencePoints < 0 {
		errs = append(errs, errors.New("coin_drop and experience must not be negative"))
	}
	if t.Evasion < 0 || t.Evasion > 1 || t.CritChance < 0 || t.CritChance > 1 {
		errs = append(errs, errors.New("evasion and crit_chance must be within [0,1]"))
	}
	switch t.AttackMode {
	case AttackModeTimer, AttackModeCooldown:
	default:
		errs = append(errs, fmt.Errorf("unknown attack_mode %q", t.AttackMode))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("enemy %q: %w", t.ID, err)
	}
	return nil
}
