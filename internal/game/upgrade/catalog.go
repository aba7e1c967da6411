// Package upgrade implements the between-wave shop: stat upgrades offered in
// rarity tiers and paid skill level-ups.
package upgrade

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/maskborn/internal/model"
)

// Rarity grades a stat upgrade offer.
type Rarity int8

const (
	Common Rarity = iota
	Rare
	Epic
	Legendary
)

var rarityNames = [...]string{
	Common:    "common",
	Rare:      "rare",
	Epic:      "epic",
	Legendary: "legendary",
}

func (r Rarity) String() string {
	if r >= 0 && int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return fmt.Sprintf("rarity(%d)", int8(r))
}

// ParseRarity resolves a rarity name.
func ParseRarity(name string) (Rarity, error) {
	for i, n := range rarityNames {
		if n == name {
			return Rarity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rarity: %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rarity) MarshalText() ([]byte, error) {
	if r < 0 || int(r) >= len(rarityNames) {
		return nil, fmt.Errorf("unknown rarity %d", int8(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rarity) UnmarshalText(text []byte) error {
	v, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Tier is the price and bonus of one stat at one rarity.
type Tier struct {
	Rarity Rarity  `yaml:"rarity"`
	Cost   int     `yaml:"cost"`
	Value  float64 `yaml:"value"`
}

// StatUpgrade lists the tiers available for a stat.
type StatUpgrade struct {
	Stat  model.StatType `yaml:"stat"`
	Tiers []Tier         `yaml:"tiers"`
}

// Catalog is the static shop configuration.
type Catalog struct {
	Stats         []StatUpgrade      `yaml:"stats"`
	RarityWeights map[Rarity]float64 `yaml:"rarity_weights"`
}

// Tier returns the tier of stat at rarity.
func (c *Catalog) Tier(stat model.StatType, rarity Rarity) (Tier, bool) {
	for _, s := range c.Stats {
		if s.Stat != stat {
			continue
		}
		for _, t := range s.Tiers {
			if t.Rarity == rarity {
				return t, true
			}
		}
	}
	return Tier{}, false
}

// Validate checks costs, values and duplicates.
func (c *Catalog) Validate() error {
	var errs []error
	seen := make(map[model.StatType]bool, len(c.Stats))
	for _, s := range c.Stats {
		if seen[s.Stat] {
			errs = append(errs, fmt.Errorf("stat %s listed twice", s.Stat))
		}
		seen[s.Stat] = true
		if len(s.Tiers) == 0 {
			errs = append(errs, fmt.Errorf("stat %s has no tiers", s.Stat))
		}
		for _, t := range s.Tiers {
			if t.Cost < 0 {
				errs = append(errs, fmt.Errorf("stat %s %s: negative cost", s.Stat, t.Rarity))
			}
			if t.Value <= 0 {
				errs = append(errs, fmt.Errorf("stat %s %s: value must be positive", s.Stat, t.Rarity))
			}
		}
	}
	return errors.Join(errs...)
}

// rarityCandidates returns picker candidates in rarity order.
func (c *Catalog) rarityCandidates() []Weighted[Rarity] {
	rarities := make([]Rarity, 0, len(c.RarityWeights))
	for r := range c.RarityWeights {
		rarities = append(rarities, r)
	}
	slices.Sort(rarities)
	out := make([]Weighted[Rarity], 0, len(rarities))
	for _, r := range rarities {
		out = append(out, Weighted[Rarity]{Item: r, Weight: c.RarityWeights[r]})
	}
	return out
}
