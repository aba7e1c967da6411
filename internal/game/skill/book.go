package skill

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/maskborn/internal/model"
)

// Book holds the skills of one session by slot.
type Book struct {
	slots []*Skill
	byID  map[model.SkillID]*Skill
}

// NewBook creates skills for templates in slot order.
func NewBook(templates []model.SkillTemplate) (*Book, error) {
	b := &Book{byID: make(map[model.SkillID]*Skill, len(templates))}
	for _, tpl := range templates {
		if _, dup := b.byID[tpl.ID]; dup {
			return nil, fmt.Errorf("duplicate skill %s", tpl.ID)
		}
		s, err := New(tpl)
		if err != nil {
			return nil, fmt.Errorf("creating skill %s: %w", tpl.ID, err)
		}
		b.slots = append(b.slots, s)
		b.byID[tpl.ID] = s
	}
	return b, nil
}

// Len returns the number of slots.
func (b *Book) Len() int { return len(b.slots) }

// Slot returns the skill in slot i, or nil.
func (b *Book) Slot(i int) *Skill {
	if i < 0 || i >= len(b.slots) {
		return nil
	}
	return b.slots[i]
}

// Get returns the skill by id.
func (b *Book) Get(id model.SkillID) (*Skill, bool) {
	s, ok := b.byID[id]
	return s, ok
}

// Skills returns skills in slot order.
func (b *Book) Skills() []*Skill {
	return append([]*Skill(nil), b.slots...)
}

// Use triggers the skill in slot i. Returns false for an empty slot or while
// the skill is on cooldown.
func (b *Book) Use(i int, env Env) bool {
	s := b.Slot(i)
	if s == nil {
		slog.Warn("use of empty skill slot", "slot", i)
		return false
	}
	return s.TryUse(env)
}

// Tick advances every cooldown.
func (b *Book) Tick(dt time.Duration) {
	for _, s := range b.slots {
		s.UpdateCooldown(dt)
	}
}

// Levels returns the level of every skill, for saving.
func (b *Book) Levels() map[model.SkillID]int {
	out := make(map[model.SkillID]int, len(b.slots))
	for _, s := range b.slots {
		out[s.ID()] = s.Level()
	}
	return out
}

// SetLevels restores saved levels. Unknown ids are ignored with a warning.
func (b *Book) SetLevels(levels map[model.SkillID]int) {
	for id, lvl := range levels {
		s, ok := b.byID[id]
		if !ok {
			slog.Warn("ignoring level of unknown skill", "skill", id, "level", lvl)
			continue
		}
		s.SetLevel(lvl)
	}
}

// ResetCooldowns clears every cooldown.
func (b *Book) ResetCooldowns() {
	for _, s := range b.slots {
		s.ResetCooldown()
	}
}
