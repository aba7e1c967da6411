package save

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/maskborn/internal/event"
	"github.com/udisondev/maskborn/internal/game/skill"
	"github.com/udisondev/maskborn/internal/model"
)

type progress struct {
	sheet      *model.StatSheet
	coins      *event.Value[int]
	experience *event.Value[int]
}

func newProgress() *progress {
	return &progress{
		sheet:      model.NewStatSheet(model.DefaultCharacterStats()),
		coins:      event.NewValue(0),
		experience: event.NewValue(0),
	}
}

func (p *progress) Stats() *model.StatSheet       { return p.sheet }
func (p *progress) Coins() *event.Value[int]      { return p.coins }
func (p *progress) Experience() *event.Value[int] { return p.experience }

func newBook(t *testing.T) *skill.Book {
	t.Helper()
	var tpls []model.SkillTemplate
	for _, id := range []model.SkillID{model.SkillHealingTotem, model.SkillFoxSagent, model.SkillShurikenFan} {
		tpls = append(tpls, model.SkillTemplate{
			ID:               id,
			Name:             id.String(),
			Cooldown:         time.Second,
			EffectMultiplier: 1,
			MaxLevel:         5,
		})
	}
	b, err := skill.NewBook(tpls)
	require.NoError(t, err)
	return b
}

func progressed(t *testing.T) (*progress, *skill.Book) {
	t.Helper()
	p := newProgress()
	p.sheet.AddModifier(model.StatHealth, 50)
	p.sheet.AddModifier(model.StatDamage, 4)
	p.sheet.SetCurrentHealth(120)
	p.coins.Set(37)
	p.experience.Set(210)

	b := newBook(t)
	fox, _ := b.Get(model.SkillFoxSagent)
	fox.Upgrade()
	fox.Upgrade()
	return p, b
}

func TestCaptureApply_RoundTrip(t *testing.T) {
	p, b := progressed(t)
	snap := Capture(p, b)

	assert.InDelta(t, 120, snap.CurrentHealth, 1e-9)
	assert.Equal(t, 37, snap.Coins)
	assert.Equal(t, 3, snap.SkillLevels[model.SkillFoxSagent])

	data, err := Encode(snap)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	fresh := newProgress()
	freshBook := newBook(t)
	Apply(decoded, fresh, freshBook)

	assert.Equal(t, p.sheet.Current(), fresh.sheet.Current())
	assert.Equal(t, p.sheet.Modifiers(), fresh.sheet.Modifiers())
	assert.Equal(t, 37, fresh.coins.Get())
	assert.Equal(t, 210, fresh.experience.Get())
	assert.Equal(t, b.Levels(), freshBook.Levels())
}

func TestApply_HealthClampedToRestoredMax(t *testing.T) {
	p := newProgress()
	snap := Capture(p, nil)
	snap.CurrentHealth = 500

	Apply(snap, p, nil)
	assert.InDelta(t, 100, p.sheet.CurrentHealth(), 1e-9)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte{0xc1, 0x00})
	require.Error(t, err)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx, "alice")
	require.ErrorIs(t, err, ErrNotFound)

	p, b := progressed(t)
	require.NoError(t, s.Save(ctx, "alice", Capture(p, b)))

	snap, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 37, snap.Coins)

	_, err = s.Load(ctx, "bob")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStore(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	s, err := OpenLocal(fmt.Sprintf("maskborn_test_%d", time.Now().UnixNano()))
	if err != nil {
		t.Skipf("local data dir unavailable: %v", err)
	}
	ctx := context.Background()

	_, err = s.Load(ctx, "alice")
	require.ErrorIs(t, err, ErrNotFound)

	p, b := progressed(t)
	require.NoError(t, s.Save(ctx, "alice", Capture(p, b)))

	snap, err := s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 37, snap.Coins)
	assert.Equal(t, 210, snap.Experience)
	assert.Equal(t, 3, snap.SkillLevels[model.SkillFoxSagent])
	assert.InDelta(t, 50, snap.Modifiers[model.StatHealth], 1e-9)

	p.coins.Set(1)
	require.NoError(t, s.Save(ctx, "alice", Capture(p, b)))
	snap, err = s.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Coins, "save replaces the previous one")
}
