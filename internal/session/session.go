// Package session wires one play session together: the player, waves of
// enemies, skills, coin drops and the upgrade shop, all advanced by a single
// fixed-order Tick.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/maskborn/internal/ai"
	"github.com/udisondev/maskborn/internal/data"
	"github.com/udisondev/maskborn/internal/event"
	"github.com/udisondev/maskborn/internal/game/combat"
	"github.com/udisondev/maskborn/internal/game/effect"
	"github.com/udisondev/maskborn/internal/game/loot"
	"github.com/udisondev/maskborn/internal/game/skill"
	"github.com/udisondev/maskborn/internal/game/upgrade"
	"github.com/udisondev/maskborn/internal/model"
	"github.com/udisondev/maskborn/internal/present"
	"github.com/udisondev/maskborn/internal/save"
	"github.com/udisondev/maskborn/internal/spawn"
	"github.com/udisondev/maskborn/internal/world"
)

// DefaultCommandBuffer is the capacity of the command queue.
const DefaultCommandBuffer = 64

// Command mutates the session between ticks. Commands run on the tick
// goroutine, so they may touch any session state.
type Command func(s *Session)

// Options tune a session beyond its game data.
type Options struct {
	PlayerObjectID   uint32
	PlayerPosition   model.Vec3
	SpawnPoints      []model.Vec3
	AutoAdvanceDelay time.Duration
	DeathDelay       time.Duration
	CellSize         float64
	CommandBuffer    int
}

// Session owns every gameplay subsystem of one run.
// Not safe for concurrent use except Submit.
type Session struct {
	data *data.GameData
	rng  model.Random
	fx   present.Collaborators
	opts Options

	world    *world.World
	resolver *combat.Resolver
	player   *combat.Player
	enemies  *ai.TickManager
	spawner  *spawn.Manager
	carriers *effect.Manager
	book     *skill.Book
	coins    *loot.CoinSpawner
	shop     *upgrade.Shop

	commands chan Command
	elapsed  time.Duration
	ticks    uint64
	over     bool
	kills    int

	gameOver event.Signal[Summary]
}

// New builds a session from validated game data.
func New(gd *data.GameData, rng model.Random, fx present.Collaborators, opts Options) (*Session, error) {
	if gd == nil {
		return nil, errors.New("game data is nil")
	}
	if rng == nil {
		return nil, errors.New("random source is nil")
	}
	if opts.PlayerObjectID == 0 {
		opts.PlayerObjectID = 1
	}
	if opts.PlayerObjectID >= spawn.FirstEnemyObjectID {
		return nil, fmt.Errorf("player object id %d collides with enemy ids", opts.PlayerObjectID)
	}
	if opts.CommandBuffer <= 0 {
		opts.CommandBuffer = DefaultCommandBuffer
	}
	fx = fx.WithDefaults()

	s := &Session{
		data:     gd,
		rng:      rng,
		fx:       fx,
		opts:     opts,
		world:    world.New(opts.CellSize),
		resolver: combat.NewResolver(rng),
		enemies:  ai.NewTickManager(),
		carriers: effect.NewManager(fx.Effects, effect.DefaultPoolSize),
		commands: make(chan Command, opts.CommandBuffer),
	}

	pcfg := combat.DefaultPlayerConfig()
	pcfg.ObjectID = opts.PlayerObjectID
	pcfg.Position = opts.PlayerPosition
	s.player = combat.NewPlayer(pcfg, gd.Player.Stats, s.resolver, s.world, fx)
	if err := s.world.Add(s.player); err != nil {
		return nil, fmt.Errorf("adding player: %w", err)
	}
	s.player.Died().Subscribe(s.onPlayerDied)

	book, err := skill.NewBook(gd.Skills)
	if err != nil {
		return nil, fmt.Errorf("creating skill book: %w", err)
	}
	s.book = book

	shop, err := upgrade.NewShop(gd.Shop, rng)
	if err != nil {
		return nil, fmt.Errorf("creating shop: %w", err)
	}
	s.shop = shop

	s.coins = loot.NewCoinSpawner(gd.Loot, s.player, fx.Effects)
	s.spawner = spawn.NewManager(gd.Waves, opts.SpawnPoints, spawn.FactoryFunc(s.spawnEnemy), rng,
		spawn.Options{AutoAdvanceDelay: opts.AutoAdvanceDelay})

	slog.Info("session created",
		"player", opts.PlayerObjectID,
		"waves", len(gd.Waves),
		"skills", book.Len(),
		"spawn_points", len(opts.SpawnPoints))
	return s, nil
}

func (s *Session) Player() *combat.Player           { return s.player }
func (s *Session) World() *world.World              { return s.world }
func (s *Session) Spawner() *spawn.Manager          { return s.spawner }
func (s *Session) Enemies() *ai.TickManager         { return s.enemies }
func (s *Session) Skills() *skill.Book              { return s.book }
func (s *Session) Carriers() *effect.Manager        { return s.carriers }
func (s *Session) Loot() *loot.CoinSpawner          { return s.coins }
func (s *Session) Shop() *upgrade.Shop              { return s.shop }
func (s *Session) Elapsed() time.Duration           { return s.elapsed }
func (s *Session) Over() bool                       { return s.over }
func (s *Session) GameOver() *event.Signal[Summary] { return &s.gameOver }

// Finished reports whether every wave is cleared and nothing is left alive.
func (s *Session) Finished() bool {
	return s.spawner.Finished() && s.spawner.AliveEnemies().Get() == 0
}

// Start begins the first wave.
func (s *Session) Start() bool {
	return s.spawner.StartNextWave()
}

// Submit queues cmd for the next tick. Safe for concurrent use.
// Returns false when the queue is full.
func (s *Session) Submit(cmd Command) bool {
	select {
	case s.commands <- cmd:
		return true
	default:
		slog.Warn("command queue full, dropping command", "capacity", cap(s.commands))
		return false
	}
}

// Tick advances the whole session by dt:
// commands, player, skill cooldowns, waves, enemies, carriers, loot, world.
func (s *Session) Tick(dt time.Duration) {
	s.drainCommands()

	s.player.Tick(dt)
	s.book.Tick(dt)
	s.spawner.Tick(dt)
	s.enemies.TickAll(dt)
	s.carriers.Tick(dt)
	s.coins.Tick(dt)
	s.world.Update()

	s.elapsed += dt
	s.ticks++
	if ai.IsDebugEnabled() && s.ticks%100 == 0 {
		slog.Debug("session tick", "tick", s.ticks, "elapsed", s.elapsed, "alive", s.spawner.AliveEnemies().Get())
	}
}

func (s *Session) drainCommands() {
	for {
		select {
		case cmd := <-s.commands:
			cmd(s)
		default:
			return
		}
	}
}

// Attack starts a player melee swing.
func (s *Session) Attack() bool {
	if s.over {
		return false
	}
	return s.player.Attack()
}

// UseSkill activates the skill in slot.
func (s *Session) UseSkill(slot int) bool {
	if s.over {
		return false
	}
	return s.book.Use(slot, s.skillEnv())
}

func (s *Session) skillEnv() skill.Env {
	return skill.Env{
		Caster:         s.player,
		Query:          s.world,
		Rng:            s.rng,
		Carriers:       s.carriers,
		DetectionRange: combat.DefaultDetectionRange,
	}
}

// Offers rolls n shop offers.
func (s *Session) Offers(n int) []upgrade.Offer {
	return s.shop.Roll(n)
}

// Buy purchases a stat upgrade with the player's coins.
func (s *Session) Buy(offer upgrade.Offer) bool {
	return s.shop.Buy(s.player, offer)
}

// UpgradeSkill buys one level of skill id.
func (s *Session) UpgradeSkill(id model.SkillID) bool {
	sk, ok := s.book.Get(id)
	if !ok {
		slog.Warn("upgrade of unknown skill", "skill", id)
		return false
	}
	return upgrade.UpgradeSkill(s.player, sk)
}

// StartNextWave begins the next wave manually.
func (s *Session) StartNextWave() bool {
	if s.over {
		return false
	}
	return s.spawner.StartNextWave()
}

// Restart revives the player and replays the waves from the start.
// Purchased upgrades, coins and skill levels are kept.
func (s *Session) Restart() {
	s.carriers.Clear()
	s.coins.Clear()
	s.book.ResetCooldowns()
	s.player.Revive()
	s.over = false
	s.spawner.Restart()
	slog.Info("session restarted")
}

// Capture snapshots the player's progress.
func (s *Session) Capture() save.Snapshot {
	return save.Capture(s.player, s.book)
}

// Restore applies a saved snapshot to the player.
func (s *Session) Restore(snap save.Snapshot) {
	save.Apply(snap, s.player, s.book)
}

// spawnEnemy is the spawner factory: it builds the enemy and registers it
// with the world and the AI tick manager.
func (s *Session) spawnEnemy(objectID uint32, enemyID string, pos model.Vec3) (*ai.Enemy, error) {
	tpl, ok := s.data.Enemy(enemyID)
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q", enemyID)
	}
	e := ai.NewEnemy(objectID, tpl, pos, s.player, s.fx, ai.EnemyOptions{DeathDelay: s.opts.DeathDelay})
	if err := s.world.Add(e); err != nil {
		return nil, fmt.Errorf("adding enemy %d: %w", objectID, err)
	}
	e.Died().Subscribe(s.onEnemyDied)
	s.enemies.Register(e)
	return e, nil
}

func (s *Session) onEnemyDied(info ai.DeathInfo) {
	s.kills++
	s.player.AddExperience(info.Experience)
	if info.CoinDrop > 0 {
		s.coins.Spawn(info.Position, info.CoinDrop)
	}
}

func (s *Session) onPlayerDied(pos model.Vec3) {
	s.over = true
	s.spawner.Stop()
	sum := s.Summary()
	slog.Info("game over",
		"elapsed", sum.Elapsed,
		"wave", sum.Wave,
		"kills", sum.Kills,
		"coins", sum.Coins)
	s.gameOver.Emit(sum)
}

// Summary is a point-in-time overview of the session.
type Summary struct {
	Elapsed    time.Duration
	Wave       int
	Waves      int
	Alive      int
	Kills      int
	Coins      int
	Experience int
	Health     float64
	MaxHealth  float64
	Over       bool
	Finished   bool
}

// Summary returns the current overview.
func (s *Session) Summary() Summary {
	stats := s.player.Stats()
	return Summary{
		Elapsed:    s.elapsed,
		Wave:       s.spawner.CurrentWave(),
		Waves:      s.spawner.WaveCount(),
		Alive:      s.spawner.AliveEnemies().Get(),
		Kills:      s.kills,
		Coins:      s.player.Coins().Get(),
		Experience: s.player.Experience().Get(),
		Health:     stats.CurrentHealth(),
		MaxHealth:  stats.MaxHealth(),
		Over:       s.over,
		Finished:   s.Finished(),
	}
}

// LogValue implements slog.LogValuer.
func (sum Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("elapsed", sum.Elapsed),
		slog.Int("wave", sum.Wave),
		slog.Int("waves", sum.Waves),
		slog.Int("alive", sum.Alive),
		slog.Int("kills", sum.Kills),
		slog.Int("coins", sum.Coins),
		slog.Int("experience", sum.Experience),
		slog.Float64("health", sum.Health),
		slog.Bool("over", sum.Over),
	)
}
