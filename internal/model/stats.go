package model

import "fmt"

// StatType identifies an upgradable character attribute.
type StatType int8

const (
	StatHealth StatType = iota
	StatArmor
	StatDamage
	StatCritChance
	StatCritDamage
	StatLifeSteal
	StatLifeStealRate
	StatEvasion
	StatHpRegen
	StatMoveSpeed
	StatAttackSpeed
	StatAttackRange
)

var statNames = [...]string{
	StatHealth:        "health",
	StatArmor:         "armor",
	StatDamage:        "damage",
	StatCritChance:    "crit_chance",
	StatCritDamage:    "crit_damage",
	StatLifeSteal:     "life_steal",
	StatLifeStealRate: "life_steal_rate",
	StatEvasion:       "evasion",
	StatHpRegen:       "hp_regen",
	StatMoveSpeed:     "move_speed",
	StatAttackSpeed:   "attack_speed",
	StatAttackRange:   "attack_range",
}

func (s StatType) String() string {
	if s >= 0 && int(s) < len(statNames) {
		return statNames[s]
	}
	return fmt.Sprintf("stat(%d)", int8(s))
}

// ParseStatType resolves a stat name as written in game data files.
func ParseStatType(name string) (StatType, error) {
	for i, n := range statNames {
		if n == name {
			return StatType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stat type: %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s StatType) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statNames) {
		return nil, fmt.Errorf("unknown stat type %d", int8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *StatType) UnmarshalText(text []byte) error {
	v, err := ParseStatType(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// IsPercentage reports whether the stat is a probability/ratio in [0,1].
func (s StatType) IsPercentage() bool {
	switch s {
	case StatCritChance, StatLifeSteal, StatLifeStealRate, StatEvasion:
		return true
	}
	return false
}

// CharacterStats is the flat attribute record of an actor.
// CurrentHealth is always within [0, MaxHealth].
type CharacterStats struct {
	MaxHealth      float64 `yaml:"max_health" msgpack:"max_health" json:"max_health"`
	CurrentHealth  float64 `yaml:"current_health" msgpack:"current_health" json:"current_health"`
	MoveSpeed      float64 `yaml:"move_speed" msgpack:"move_speed" json:"move_speed"`
	Damage         float64 `yaml:"damage" msgpack:"damage" json:"damage"`
	AttackSpeed    float64 `yaml:"attack_speed" msgpack:"attack_speed" json:"attack_speed"`
	AttackRange    float64 `yaml:"attack_range" msgpack:"attack_range" json:"attack_range"`
	CritChance     float64 `yaml:"crit_chance" msgpack:"crit_chance" json:"crit_chance"`
	CritMultiplier float64 `yaml:"crit_multiplier" msgpack:"crit_multiplier" json:"crit_multiplier"`
	Armor          float64 `yaml:"armor" msgpack:"armor" json:"armor"`
	Evasion        float64 `yaml:"evasion" msgpack:"evasion" json:"evasion"`
	LifeSteal      float64 `yaml:"life_steal" msgpack:"life_steal" json:"life_steal"`
	LifeStealRate  float64 `yaml:"life_steal_rate" msgpack:"life_steal_rate" json:"life_steal_rate"`
	HpRegen        float64 `yaml:"hp_regen" msgpack:"hp_regen" json:"hp_regen"`
}

// DefaultCharacterStats returns the starting stats of a fresh player.
func DefaultCharacterStats() CharacterStats {
	return CharacterStats{
		MaxHealth:      100,
		CurrentHealth:  100,
		MoveSpeed:      5,
		Damage:         10,
		AttackSpeed:    1,
		AttackRange:    1.5,
		CritMultiplier: 2,
		HpRegen:        1,
	}
}

// Normalize clamps every field into its documented range.
func (s CharacterStats) Normalize() CharacterStats {
	if s.MaxHealth < 1 {
		s.MaxHealth = 1
	}
	s.CurrentHealth = clamp(s.CurrentHealth, 0, s.MaxHealth)
	s.CritChance = clamp01(s.CritChance)
	if s.CritMultiplier < 1 {
		s.CritMultiplier = 1
	}
	if s.Armor < 0 {
		s.Armor = 0
	}
	s.Evasion = clamp01(s.Evasion)
	s.LifeSteal = clamp01(s.LifeSteal)
	s.LifeStealRate = clamp01(s.LifeStealRate)
	if s.HpRegen < 0 {
		s.HpRegen = 0
	}
	if s.MoveSpeed < 0 {
		s.MoveSpeed = 0
	}
	return s
}

// StatSheet holds base stats plus accumulated additive modifiers.
// Effective stats are recomputed on read; only CurrentHealth is stored separately
// because damage, heal and regen mutate it directly.
type StatSheet struct {
	base          CharacterStats
	modifiers     map[StatType]float64
	currentHealth float64
}

// NewStatSheet creates a sheet with the given base stats at full health.
func NewStatSheet(base CharacterStats) *StatSheet {
	base = base.Normalize()
	return &StatSheet{
		base:          base,
		modifiers:     make(map[StatType]float64),
		currentHealth: base.MaxHealth,
	}
}

// Base returns the base stats (without modifiers).
func (s *StatSheet) Base() CharacterStats {
	b := s.base
	b.CurrentHealth = s.currentHealth
	return b
}

// SetBase replaces the base stats (used when loading a save).
// Current health is kept and clamped to the new maximum.
func (s *StatSheet) SetBase(base CharacterStats) {
	s.base = base.Normalize()
	s.clampHealth()
}

// Modifiers returns a copy of the accumulated modifiers.
func (s *StatSheet) Modifiers() map[StatType]float64 {
	out := make(map[StatType]float64, len(s.modifiers))
	for k, v := range s.modifiers {
		out[k] = v
	}
	return out
}

// Modifier returns the accumulated modifier for a stat.
func (s *StatSheet) Modifier(stat StatType) float64 {
	return s.modifiers[stat]
}

// AddModifier adds value to the accumulated modifier of stat.
// Raising max health does not heal; lowering it clamps current health.
func (s *StatSheet) AddModifier(stat StatType, value float64) {
	s.modifiers[stat] += value
	s.clampHealth()
}

// SetModifiers replaces all modifiers (used when loading a save).
func (s *StatSheet) SetModifiers(mods map[StatType]float64) {
	s.modifiers = make(map[StatType]float64, len(mods))
	for k, v := range mods {
		s.modifiers[k] = v
	}
	s.clampHealth()
}

// Current returns effective stats: base + modifiers, normalized.
func (s *StatSheet) Current() CharacterStats {
	c := s.base
	c.MaxHealth += s.modifiers[StatHealth]
	c.Armor += s.modifiers[StatArmor]
	c.Damage += s.modifiers[StatDamage]
	c.CritChance += s.modifiers[StatCritChance]
	c.CritMultiplier += s.modifiers[StatCritDamage]
	c.LifeSteal += s.modifiers[StatLifeSteal]
	c.LifeStealRate += s.modifiers[StatLifeStealRate]
	c.Evasion += s.modifiers[StatEvasion]
	c.HpRegen += s.modifiers[StatHpRegen]
	c.MoveSpeed += s.modifiers[StatMoveSpeed]
	c.AttackSpeed += s.modifiers[StatAttackSpeed]
	c.AttackRange += s.modifiers[StatAttackRange]
	c.CurrentHealth = s.currentHealth
	return c.Normalize()
}

// CurrentHealth returns current health.
func (s *StatSheet) CurrentHealth() float64 {
	return s.currentHealth
}

// MaxHealth returns effective max health.
func (s *StatSheet) MaxHealth() float64 {
	return s.Current().MaxHealth
}

// SetCurrentHealth sets current health with validation (clamp 0..MaxHealth).
func (s *StatSheet) SetCurrentHealth(hp float64) {
	s.currentHealth = clamp(hp, 0, s.MaxHealth())
}

func (s *StatSheet) clampHealth() {
	s.SetCurrentHealth(s.currentHealth)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// Clamp01 clamps v into [0, 1].
func Clamp01(v float64) float64 {
	return clamp01(v)
}
