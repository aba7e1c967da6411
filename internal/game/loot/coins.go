// Package loot spawns pooled coin drops and pulls them to the player.
package loot

import (
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/pool"
	"github.com/udisondev/maskborn/internal/present"
)

// EffectCoin is the visual effect id of a dropped coin.
const EffectCoin = "coin"

// Config tunes coin behavior.
type Config struct {
	MagnetDelay    time.Duration `yaml:"magnet_delay"`
	MagnetSpeed    float64       `yaml:"magnet_speed"`
	PickupDistance float64       `yaml:"pickup_distance"`
	MaxActive      int           `yaml:"max_active"`
	PoolCapacity   int           `yaml:"pool_capacity"`
	PoolMaxSize    int           `yaml:"pool_max_size"`
}

// DefaultConfig returns the default coin tuning.
func DefaultConfig() Config {
	return Config{
		MagnetDelay:    2 * time.Second,
		MagnetSpeed:    10,
		PickupDistance: 1,
		MaxActive:      50,
		PoolCapacity:   10,
		PoolMaxSize:    100,
	}
}

// Collector receives picked up coins.
type Collector interface {
	Position() model.Vec3
	AddCoins(n int)
}

// Coin is a pooled coin drop.
type Coin struct {
	pos    model.Vec3
	value  int
	age    time.Duration
	magnet bool
	handle present.Handle
}

func (c *Coin) Position() model.Vec3 { return c.pos }
func (c *Coin) Value() int           { return c.value }
func (c *Coin) Magnetized() bool     { return c.magnet }

// CoinSpawner owns the coin pool and the active coin list.
type CoinSpawner struct {
	cfg       Config
	collector Collector
	fx        present.EffectPlayer
	pool      *pool.Pool[*Coin]
	active    []*Coin
}

// NewCoinSpawner creates a spawner crediting collector.
func NewCoinSpawner(cfg Config, collector Collector, fx present.EffectPlayer) *CoinSpawner {
	if fx == nil {
		fx = present.Nop{}
	}
	s := &CoinSpawner{cfg: cfg, collector: collector, fx: fx}
	s.pool = pool.New(pool.Hooks[*Coin]{
		New: func() *Coin { return &Coin{} },
		OnRelease: func(c *Coin) {
			s.fx.StopEffect(c.handle)
			*c = Coin{}
		},
	}, cfg.PoolCapacity, cfg.PoolMaxSize)
	return s
}

// Spawn drops a coin worth value at pos. When MaxActive coins are already on
// the ground the value is credited at once instead. Returns whether a coin
// was dropped.
func (s *CoinSpawner) Spawn(pos model.Vec3, value int) bool {
	if value <= 0 {
		return false
	}
	if s.cfg.MaxActive > 0 && len(s.active) >= s.cfg.MaxActive {
		if s.collector != nil {
			s.collector.AddCoins(value)
		}
		return false
	}
	c := s.pool.Acquire()
	c.pos = pos
	c.value = value
	c.handle = s.fx.PlayEffect(EffectCoin, pos, model.Vec3{}, 0)
	s.active = append(s.active, c)
	return true
}

// Tick ages coins, pulls magnetized ones to the collector and picks up those
// within PickupDistance.
func (s *CoinSpawner) Tick(dt time.Duration) {
	if s.collector == nil {
		return
	}
	target := s.collector.Position()
	step := s.cfg.MagnetSpeed * dt.Seconds()

	for _, c := range slices.Clone(s.active) {
		c.age += dt
		if !c.magnet && c.age >= s.cfg.MagnetDelay {
			c.magnet = true
		}
		if !c.magnet {
			continue
		}
		c.pos = c.pos.MoveTowards(target, step)
		if c.pos.Distance(target) <= s.cfg.PickupDistance {
			s.pickup(c)
		}
	}
}

func (s *CoinSpawner) pickup(c *Coin) {
	s.collector.AddCoins(c.value)
	s.release(c)
}

func (s *CoinSpawner) release(c *Coin) {
	i := slices.Index(s.active, c)
	if i < 0 {
		return
	}
	s.active = slices.Delete(s.active, i, i+1)
	if !s.pool.Release(c) {
		slog.Warn("coin was not acquired from the pool")
	}
}

// Coins returns the active coins.
func (s *CoinSpawner) Coins() []*Coin {
	return slices.Clone(s.active)
}

// ActiveCount returns the number of coins on the ground.
func (s *CoinSpawner) ActiveCount() int {
	return len(s.active)
}

// Pool exposes the coin pool for inspection.
func (s *CoinSpawner) Pool() *pool.Pool[*Coin] {
	return s.pool
}

// Clear returns every coin to the pool without crediting it.
func (s *CoinSpawner) Clear() {
	for _, c := range slices.Clone(s.active) {
		s.release(c)
	}
}
