package model

import (
	"fmt"
	"time"
)

// SkillID identifies a skill kind. Values are stable: they are persisted in saves.
type SkillID int8

const (
	SkillHealingTotem SkillID = iota
	SkillFoxSagent
	SkillShurikenFan
)

var skillNames = map[SkillID]string{
	SkillHealingTotem: "healing_totem",
	SkillFoxSagent:    "fox_sagent",
	SkillShurikenFan:  "shuriken_fan",
}

func (id SkillID) String() string {
	if n, ok := skillNames[id]; ok {
		return n
	}
	return fmt.Sprintf("skill(%d)", int8(id))
}

// ParseSkillID resolves a skill name as written in game data files.
func ParseSkillID(name string) (SkillID, error) {
	for id, n := range skillNames {
		if n == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown skill: %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (id SkillID) MarshalText() ([]byte, error) {
	if _, ok := skillNames[id]; !ok {
		return nil, fmt.Errorf("unknown skill id %d", int8(id))
	}
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *SkillID) UnmarshalText(text []byte) error {
	v, err := ParseSkillID(string(text))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// SkillTemplate is the static definition of a player skill.
type SkillTemplate struct {
	ID               SkillID       `yaml:"id"`
	Name             string        `yaml:"name"`
	Cooldown         time.Duration `yaml:"cooldown"`
	EffectMultiplier float64       `yaml:"effect_multiplier"`
	UpgradeCost      int           `yaml:"upgrade_cost"`
	MaxLevel         int           `yaml:"max_level"` // enforced by the shop only
	Radius           float64       `yaml:"radius"`
	VisualEffect     string        `yaml:"visual_effect"`
}

// Validate checks the template.
func (t *SkillTemplate) Validate() error {
	if _, ok := skillNames[t.ID]; !ok {
		return fmt.Errorf("skill %d: unknown id", int8(t.ID))
	}
	if t.Cooldown < 0 {
		return fmt.Errorf("skill %s: cooldown must not be negative", t.ID)
	}
	if t.EffectMultiplier < 0 || t.Radius < 0 {
		return fmt.Errorf("skill %s: multiplier and radius must not be negative", t.ID)
	}
	if t.MaxLevel < 1 {
		return fmt.Errorf("skill %s: max_level must be at least 1", t.ID)
	}
	return nil
}
