package effect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/maskborn/internal/game/area"
	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/present"
)

const tick = 100 * time.Millisecond

func TestCarrier_ReturnsAfterLifetime(t *testing.T) {
	rec := present.NewRecorder()
	m := NewManager(rec, 0)

	fired := 0
	c := m.Spawn("fox", model.NewVec3(1, 0, 1), model.Vec3{Z: 1})
	c.Play(area.ApplierFunc(func(float64) { fired++ }),
		[]area.Config{{Kind: area.OneShot, Delay: 500 * time.Millisecond}},
		time.Second)

	require.Len(t, rec.Effects, 1)
	assert.Equal(t, "fox", rec.Effects[0].ID)
	assert.Equal(t, time.Second, rec.Effects[0].Duration)

	for range 9 {
		m.Tick(tick)
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, m.ActiveCount(), "lifetime not over yet")

	m.Tick(tick)
	assert.Zero(t, m.ActiveCount())
	assert.Equal(t, 1, m.Pool("fox").CountInactive())
	assert.Len(t, rec.Stopped, 1)
}

func TestCarrier_ZeroLifetimeWaitsForEngine(t *testing.T) {
	m := NewManager(nil, 0)
	c := m.Spawn("shuriken", model.Vec3{}, model.Vec3{})
	c.Play(area.ApplierFunc(func(float64) {}),
		[]area.Config{{Kind: area.Continuous, Duration: time.Second, Interval: 300 * time.Millisecond}},
		0)

	for range 9 {
		m.Tick(tick)
	}
	assert.Equal(t, 1, m.ActiveCount())
	m.Tick(tick)
	assert.Zero(t, m.ActiveCount())
}

func TestManager_ReusesCarriersPerVisual(t *testing.T) {
	m := NewManager(nil, 0)

	a := m.Spawn("heal", model.Vec3{}, model.Vec3{})
	a.ReturnToPool()
	a.ReturnToPool()
	b := m.Spawn("heal", model.NewVec3(5, 0, 0), model.Vec3{})
	other := m.Spawn("hit_1", model.Vec3{}, model.Vec3{})

	assert.Same(t, a, b)
	assert.Equal(t, model.NewVec3(5, 0, 0), b.Position())
	assert.NotSame(t, a, other)
	assert.Equal(t, 1, m.Pool("heal").CountAll())
	assert.Equal(t, 2, m.ActiveCount())
}

func TestCarrier_ReleaseStopsEngine(t *testing.T) {
	m := NewManager(nil, 0)
	fired := 0
	c := m.Spawn("fox", model.Vec3{}, model.Vec3{})
	c.Play(area.ApplierFunc(func(float64) { fired++ }),
		[]area.Config{{Kind: area.Continuous, Duration: 5 * time.Second, Interval: tick}},
		5*time.Second)

	m.Tick(tick)
	require.Equal(t, 1, fired)
	c.ReturnToPool()
	assert.False(t, c.Engine().IsRunning())

	m.Tick(tick)
	c.Update(tick)
	assert.Equal(t, 1, fired, "released carrier never fires again")
}

func TestManager_Clear(t *testing.T) {
	m := NewManager(nil, 0)
	m.Spawn("a", model.Vec3{}, model.Vec3{})
	m.Spawn("b", model.Vec3{}, model.Vec3{})

	m.Clear()

	assert.Zero(t, m.ActiveCount())
	assert.Nil(t, m.Pool("a"))
}
