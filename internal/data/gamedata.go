// Package data loads the static game data: player base stats, enemy
// templates, waves, skills, the upgrade catalog and loot tuning.
// A default set is embedded into the binary.
package data

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/maskborn/internal/game/loot"
	"github.com/udisondev/maskborn/internal/game/upgrade"
	"github.com/udisondev/maskborn/internal/model"
)

//go:embed gamedata.yaml
var embedded []byte

// PlayerData holds the player's starting stats.
type PlayerData struct {
	Stats model.CharacterStats `yaml:"stats"`
}

// GameData is the whole static data set.
type GameData struct {
	Player  PlayerData            `yaml:"player"`
	Enemies []model.EnemyTemplate `yaml:"enemies"`
	Waves   []model.Wave          `yaml:"waves"`
	Skills  []model.SkillTemplate `yaml:"skills"`
	Shop    upgrade.Catalog       `yaml:"shop"`
	Loot    loot.Config           `yaml:"loot"`

	enemies map[string]*model.EnemyTemplate
}

// Default returns the embedded data set.
func Default() (*GameData, error) {
	gd, err := Parse(embedded)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded game data: %w", err)
	}
	return gd, nil
}

// Load reads game data from path. An empty path selects the embedded set.
func Load(path string) (*GameData, error) {
	if path == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading game data %s: %w", path, err)
	}
	gd, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing game data %s: %w", path, err)
	}
	return gd, nil
}

// Parse decodes, defaults and validates game data.
func Parse(raw []byte) (*GameData, error) {
	gd := &GameData{Loot: loot.DefaultConfig()}
	if err := yaml.Unmarshal(raw, gd); err != nil {
		return nil, fmt.Errorf("unmarshaling game data: %w", err)
	}
	if gd.Player.Stats == (model.CharacterStats{}) {
		gd.Player.Stats = model.DefaultCharacterStats()
	}
	gd.Player.Stats = gd.Player.Stats.Normalize()

	gd.enemies = make(map[string]*model.EnemyTemplate, len(gd.Enemies))
	for i := range gd.Enemies {
		tpl := &gd.Enemies[i]
		tpl.ApplyDefaults()
		gd.enemies[tpl.ID] = tpl
	}

	if err := gd.Validate(); err != nil {
		return nil, fmt.Errorf("validating game data: %w", err)
	}

	slog.Debug("game data loaded",
		"enemies", len(gd.Enemies),
		"waves", len(gd.Waves),
		"skills", len(gd.Skills),
		"shop_stats", len(gd.Shop.Stats))
	return gd, nil
}

// Enemy returns the template with id.
func (gd *GameData) Enemy(id string) (*model.EnemyTemplate, bool) {
	tpl, ok := gd.enemies[id]
	return tpl, ok
}

// Validate checks every section and cross references.
func (gd *GameData) Validate() error {
	var errs []error

	if len(gd.Enemies) == 0 {
		errs = append(errs, errors.New("no enemies defined"))
	}
	seen := make(map[string]bool, len(gd.Enemies))
	for i := range gd.Enemies {
		tpl := &gd.Enemies[i]
		if seen[tpl.ID] {
			errs = append(errs, fmt.Errorf("enemy %q defined twice", tpl.ID))
		}
		seen[tpl.ID] = true
		if err := tpl.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(gd.Waves) == 0 {
		errs = append(errs, errors.New("no waves defined"))
	}
	known := func(id string) bool { return seen[id] }
	for i, w := range gd.Waves {
		if err := w.Validate(known); err != nil {
			errs = append(errs, fmt.Errorf("wave %d: %w", i, err))
		}
	}

	skills := make(map[model.SkillID]bool, len(gd.Skills))
	for i := range gd.Skills {
		s := &gd.Skills[i]
		if skills[s.ID] {
			errs = append(errs, fmt.Errorf("skill %s defined twice", s.ID))
		}
		skills[s.ID] = true
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := gd.Shop.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("shop: %w", err))
	}
	if gd.Loot.MagnetSpeed < 0 || gd.Loot.PickupDistance < 0 {
		errs = append(errs, errors.New("loot: magnet speed and pickup distance must not be negative"))
	}

	return errors.Join(errs...)
}
