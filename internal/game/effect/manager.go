package effect

import (
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/pool"
	"github.com/udisondev/maskborn/internal/present"
)

// DefaultPoolSize is the capacity hint of each per-visual pool.
const DefaultPoolSize = 8

// Manager owns one carrier pool per visual effect id and ticks active carriers
// in spawn order.
type Manager struct {
	fx       present.EffectPlayer
	pools    map[string]*pool.Pool[*Carrier]
	active   []*Carrier
	poolSize int
	maxSize  int
}

// NewManager creates a manager. maxSize bounds idle carriers per visual (0 = unlimited).
func NewManager(fx present.EffectPlayer, maxSize int) *Manager {
	if fx == nil {
		fx = present.Nop{}
	}
	return &Manager{
		fx:       fx,
		pools:    make(map[string]*pool.Pool[*Carrier]),
		poolSize: DefaultPoolSize,
		maxSize:  maxSize,
	}
}

func (m *Manager) poolFor(visual string) *pool.Pool[*Carrier] {
	if p, ok := m.pools[visual]; ok {
		return p
	}
	p := pool.New(pool.Hooks[*Carrier]{
		New:       func() *Carrier { return newCarrier(m, visual) },
		OnRelease: func(c *Carrier) { c.reset() },
	}, m.poolSize, m.maxSize)
	m.pools[visual] = p
	return p
}

// Spawn acquires a carrier for visual placed at pos. The caller arms it with Play.
func (m *Manager) Spawn(visual string, pos, facing model.Vec3) *Carrier {
	if visual == "" {
		slog.Warn("spawning effect carrier without visual id")
	}
	c := m.poolFor(visual).Acquire()
	c.pos = pos
	c.facing = facing
	m.active = append(m.active, c)
	return c
}

func (m *Manager) release(c *Carrier) {
	p, ok := m.pools[c.visual]
	if !ok || !p.IsActive(c) {
		return
	}
	if c.playing {
		m.fx.StopEffect(c.handle)
	}
	p.Release(c)
	if i := slices.Index(m.active, c); i >= 0 {
		m.active = slices.Delete(m.active, i, i+1)
	}
}

// Tick updates every active carrier. Carriers may return to the pool during the tick.
func (m *Manager) Tick(dt time.Duration) {
	for _, c := range slices.Clone(m.active) {
		c.Update(dt)
	}
}

// ActiveCount returns the number of carriers in play.
func (m *Manager) ActiveCount() int {
	return len(m.active)
}

// Pool returns the pool of visual, or nil when none was created.
func (m *Manager) Pool(visual string) *pool.Pool[*Carrier] {
	return m.pools[visual]
}

// Clear returns every active carrier and destroys all pools.
func (m *Manager) Clear() {
	for _, c := range slices.Clone(m.active) {
		c.ReturnToPool()
	}
	for _, p := range m.pools {
		p.Clear()
	}
	clear(m.pools)
}
