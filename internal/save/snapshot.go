// Package save persists player progress between runs: character stats,
// purchased upgrades, currencies and skill levels.
package save

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/udisondev/maskborn/internal/event"
	"github.com/udisondev/maskborn/internal/game/skill"
	"github.com/udisondev/maskborn/internal/model"
)

// ErrNotFound is returned by Store.Load when a profile has no save.
var ErrNotFound = errors.New("save not found")

// Snapshot is the persisted progress of one profile.
type Snapshot struct {
	Base          model.CharacterStats       `msgpack:"base"`
	Modifiers     map[model.StatType]float64 `msgpack:"modifiers"`
	CurrentHealth float64                    `msgpack:"current_health"`
	Coins         int                        `msgpack:"coins"`
	Experience    int                        `msgpack:"experience"`
	SkillLevels   map[model.SkillID]int      `msgpack:"skill_levels"`
	SavedAt       time.Time                  `msgpack:"saved_at"`
}

// Store loads and saves snapshots by profile name.
type Store interface {
	Save(ctx context.Context, profile string, snap Snapshot) error
	Load(ctx context.Context, profile string) (Snapshot, error)
}

// Progress is the player state a snapshot round-trips.
type Progress interface {
	Stats() *model.StatSheet
	Coins() *event.Value[int]
	Experience() *event.Value[int]
}

// Capture takes a snapshot of the player and the skill book.
// book may be nil.
func Capture(p Progress, book *skill.Book) Snapshot {
	sheet := p.Stats()
	snap := Snapshot{
		Base:          sheet.Base(),
		Modifiers:     sheet.Modifiers(),
		CurrentHealth: sheet.CurrentHealth(),
		Coins:         p.Coins().Get(),
		Experience:    p.Experience().Get(),
		SavedAt:       time.Now().UTC(),
	}
	if book != nil {
		snap.SkillLevels = book.Levels()
	}
	return snap
}

// Apply restores a snapshot onto the player and the skill book.
// Health is restored last so that it is clamped to the restored maximum.
func Apply(snap Snapshot, p Progress, book *skill.Book) {
	sheet := p.Stats()
	sheet.SetBase(snap.Base)
	sheet.SetModifiers(snap.Modifiers)
	sheet.SetCurrentHealth(snap.CurrentHealth)
	p.Coins().Set(snap.Coins)
	p.Experience().Set(snap.Experience)
	if book != nil && len(snap.SkillLevels) > 0 {
		book.SetLevels(snap.SkillLevels)
	}
}

// Encode serializes a snapshot with msgpack.
func Encode(snap Snapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot produced by Encode.
func Decode(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return snap, nil
}
