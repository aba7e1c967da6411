// Package spawn drives wave-based enemy spawning and tracks the enemies it
// spawned until they die.
package spawn

import (
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/maskborn/internal/ai"
	"github.com/udisondev/maskborn/internal/event"
	"github.com/udisondev/maskborn/internal/model"
)

// FirstEnemyObjectID is the first object id handed to spawned enemies.
// Players use lower ids.
const FirstEnemyObjectID uint32 = 100000

// Factory creates a live enemy. The manager owns the alive count; the
// factory wires everything else (world, AI, loot).
type Factory interface {
	SpawnEnemy(objectID uint32, enemyID string, pos model.Vec3) (*ai.Enemy, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(objectID uint32, enemyID string, pos model.Vec3) (*ai.Enemy, error)

// SpawnEnemy calls f.
func (f FactoryFunc) SpawnEnemy(objectID uint32, enemyID string, pos model.Vec3) (*ai.Enemy, error) {
	return f(objectID, enemyID, pos)
}

// Options tunes wave progression.
type Options struct {
	// AutoAdvanceDelay starts the next wave this long after a clear.
	// Zero waits for an explicit StartNextWave.
	AutoAdvanceDelay time.Duration
}

type tracked struct {
	enemy *ai.Enemy
	sub   event.Subscription
}

// Manager runs the configured waves in order.
// Alive count is changed only through the per-enemy death callback and
// stale-reference pruning, both guarded by the tracking map.
type Manager struct {
	waves   []model.Wave
	points  []model.Vec3
	factory Factory
	rng     model.Random
	opts    Options

	index    int
	spawning bool
	stopped  bool // wave aborted by Stop; deaths no longer clear it
	run      *waveRun

	tracked map[uint32]*tracked
	order   []uint32
	alive   *event.Value[int]

	advancePending   bool
	advanceRemaining time.Duration

	nextObjectID uint32

	started event.Signal[int]
	cleared event.Signal[int]
}

// NewManager creates a wave manager. Spawn points are picked uniformly per enemy.
func NewManager(waves []model.Wave, points []model.Vec3, factory Factory, rng model.Random, opts Options) *Manager {
	return &Manager{
		waves:        waves,
		points:       points,
		factory:      factory,
		rng:          rng,
		opts:         opts,
		tracked:      make(map[uint32]*tracked),
		alive:        event.NewValue(0),
		nextObjectID: FirstEnemyObjectID,
	}
}

// AliveEnemies is the observable count of tracked living enemies.
func (m *Manager) AliveEnemies() *event.Value[int] { return m.alive }

// OnWaveStarted is emitted with the wave index when a wave begins.
func (m *Manager) OnWaveStarted() *event.Signal[int] { return &m.started }

// OnWaveCleared is emitted with the wave index when a wave is cleared.
func (m *Manager) OnWaveCleared() *event.Signal[int] { return &m.cleared }

// CurrentWave returns the index of the next wave to clear.
func (m *Manager) CurrentWave() int { return m.index }

// WaveCount returns the number of configured waves.
func (m *Manager) WaveCount() int { return len(m.waves) }

// IsSpawning reports whether the current wave is still emitting enemies.
func (m *Manager) IsSpawning() bool { return m.spawning }

// Finished reports whether every wave has been cleared.
func (m *Manager) Finished() bool { return m.index >= len(m.waves) }

// StartNextWave begins the current wave. It is a no-op while a wave is
// spawning or when all waves are consumed. Returns whether a wave started.
func (m *Manager) StartNextWave() bool {
	if m.spawning || m.index >= len(m.waves) {
		return false
	}
	m.advancePending = false
	m.stopped = false
	wave := &m.waves[m.index]
	m.spawning = true
	m.run = newWaveRun(wave)

	slog.Info("wave started",
		"wave", m.index,
		"name", wave.Name,
		"enemies", wave.TotalEnemies())
	m.started.Emit(m.index)

	m.pump()
	return true
}

// Tick prunes stale enemies, advances spawn timers and the auto-advance delay.
func (m *Manager) Tick(dt time.Duration) {
	m.prune()

	if m.run != nil {
		m.run.wait -= dt
		m.pump()
	}

	if m.advancePending {
		m.advanceRemaining -= dt
		if m.advanceRemaining <= 0 {
			m.advancePending = false
			m.StartNextWave()
		}
	}
}

func (m *Manager) pump() {
	for m.run != nil && m.run.wait <= 0 {
		entry, ok := m.run.step()
		switch {
		case !ok:
			m.finishSpawning()
		case entry != nil:
			m.spawnOne(entry)
		}
	}
}

func (m *Manager) finishSpawning() {
	m.run = nil
	m.spawning = false
	if ai.IsDebugEnabled() {
		slog.Debug("wave spawning finished", "wave", m.index, "alive", m.alive.Get())
	}
	if m.alive.Get() == 0 && !m.stopped {
		m.waveCleared()
	}
}

func (m *Manager) spawnOne(entry *model.WaveEntry) {
	if len(m.points) == 0 {
		slog.Warn("no spawn points, skipping enemy", "enemy", entry.EnemyID, "wave", m.index)
		return
	}
	if m.factory == nil {
		slog.Warn("no enemy factory, skipping enemy", "enemy", entry.EnemyID)
		return
	}
	pos := m.points[model.RandIndex(m.rng, len(m.points))]

	objectID := m.nextObjectID
	m.nextObjectID++

	enemy, err := m.factory.SpawnEnemy(objectID, entry.EnemyID, pos)
	if err != nil {
		slog.Warn("failed to spawn enemy",
			"enemy", entry.EnemyID,
			"objectID", objectID,
			"error", err)
		return
	}
	if enemy == nil {
		return
	}

	id := enemy.ObjectID()
	m.tracked[id] = &tracked{
		enemy: enemy,
		sub:   enemy.Died().Subscribe(func(ai.DeathInfo) { m.handleDeath(id) }),
	}
	m.order = append(m.order, id)
	m.alive.Set(m.alive.Get() + 1)
}

// handleDeath is the only path that decrements the alive count.
func (m *Manager) handleDeath(id uint32) {
	t, ok := m.tracked[id]
	if !ok {
		return
	}
	t.sub.Unsubscribe()
	delete(m.tracked, id)
	m.alive.Set(m.alive.Get() - 1)

	if m.alive.Get() == 0 && !m.spawning && !m.stopped {
		m.waveCleared()
	}
}

// prune treats enemies destroyed without a death signal as dead.
func (m *Manager) prune() {
	var stale []uint32
	for _, id := range m.order {
		if t, ok := m.tracked[id]; ok && t.enemy.IsDestroyed() {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		slog.Warn("pruning enemy destroyed without death signal", "objectID", id)
		m.handleDeath(id)
	}
	m.order = slices.DeleteFunc(m.order, func(id uint32) bool {
		_, ok := m.tracked[id]
		return !ok
	})
}

func (m *Manager) waveCleared() {
	idx := m.index
	m.index++
	slog.Info("wave cleared", "wave", idx, "remaining", len(m.waves)-m.index)
	m.cleared.Emit(idx)

	if m.opts.AutoAdvanceDelay > 0 && m.index < len(m.waves) {
		m.advancePending = true
		m.advanceRemaining = m.opts.AutoAdvanceDelay
	}
}

// Stop cancels pending spawns and the auto-advance timer. Tracked enemies
// stay alive, but their deaths no longer clear the aborted wave.
func (m *Manager) Stop() {
	m.run = nil
	m.spawning = false
	m.stopped = true
	m.advancePending = false
}

// Stopped reports whether the current wave was aborted by Stop.
func (m *Manager) Stopped() bool { return m.stopped }

// Restart cancels all timers, destroys every tracked enemy, resets the
// counters and starts again from wave 0.
func (m *Manager) Restart() {
	m.Stop()
	for _, id := range m.order {
		t, ok := m.tracked[id]
		if !ok {
			continue
		}
		t.sub.Unsubscribe()
		t.enemy.Destroy()
	}
	clear(m.tracked)
	m.order = m.order[:0]
	m.alive.Set(0)
	m.index = 0

	slog.Info("waves restarted")
	m.StartNextWave()
}
