package loot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/present"
)

type wallet struct {
	pos   model.Vec3
	coins int
}

func (w *wallet) Position() model.Vec3 { return w.pos }
func (w *wallet) AddCoins(n int)       { w.coins += n }

func TestCoinSpawner_MagnetAndPickup(t *testing.T) {
	w := &wallet{}
	rec := present.NewRecorder()
	s := NewCoinSpawner(DefaultConfig(), w, rec)

	require.True(t, s.Spawn(model.NewVec3(5, 0, 0), 3))
	require.Len(t, rec.Effects, 1)
	assert.Equal(t, EffectCoin, rec.Effects[0].ID)

	for range 19 {
		s.Tick(100 * time.Millisecond)
	}
	assert.Equal(t, model.NewVec3(5, 0, 0), s.Coins()[0].Position(), "magnet waits 2s")

	s.Tick(100 * time.Millisecond)
	assert.True(t, s.Coins()[0].Magnetized())
	assert.InDelta(t, 4, s.Coins()[0].Position().X, 1e-9, "10 units/s")

	for range 3 {
		s.Tick(100 * time.Millisecond)
	}
	assert.Zero(t, s.ActiveCount())
	assert.Equal(t, 3, w.coins)
	assert.Equal(t, 1, s.Pool().CountInactive())
	assert.Len(t, rec.Stopped, 1)
}

func TestCoinSpawner_ReusesPooledCoins(t *testing.T) {
	w := &wallet{}
	s := NewCoinSpawner(DefaultConfig(), w, nil)

	for range 5 {
		s.Spawn(model.Vec3{}, 1)
		s.Tick(2 * time.Second)
	}
	assert.Equal(t, 5, w.coins)
	assert.Equal(t, 1, s.Pool().CountAll())
}

func TestCoinSpawner_MaxActiveCreditsDirectly(t *testing.T) {
	w := &wallet{pos: model.NewVec3(100, 0, 0)}
	cfg := DefaultConfig()
	cfg.MaxActive = 2
	s := NewCoinSpawner(cfg, w, nil)

	assert.True(t, s.Spawn(model.Vec3{}, 1))
	assert.True(t, s.Spawn(model.Vec3{}, 1))
	assert.False(t, s.Spawn(model.Vec3{}, 7))

	assert.Equal(t, 2, s.ActiveCount())
	assert.Equal(t, 7, w.coins)
}

func TestCoinSpawner_IgnoresWorthlessDrops(t *testing.T) {
	s := NewCoinSpawner(DefaultConfig(), &wallet{}, nil)
	assert.False(t, s.Spawn(model.Vec3{}, 0))
	assert.Zero(t, s.ActiveCount())
}

func TestCoinSpawner_Clear(t *testing.T) {
	w := &wallet{}
	s := NewCoinSpawner(DefaultConfig(), w, nil)
	s.Spawn(model.Vec3{}, 1)
	s.Spawn(model.Vec3{}, 1)

	s.Clear()

	assert.Zero(t, s.ActiveCount())
	assert.Zero(t, w.coins)
	assert.Equal(t, 2, s.Pool().CountInactive())
}
