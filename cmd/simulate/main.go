package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/maskborn/internal/ai"
	"github.com/udisondev/maskborn/internal/config"
	"github.com/udisondev/maskborn/internal/data"
	"github.com/udisondev/maskborn/internal/db"
	"github.com/udisondev/maskborn/internal/present"
	"github.com/udisondev/maskborn/internal/save"
	"github.com/udisondev/maskborn/internal/session"
)

const (
	ConfigPath = "config/simulate.yaml"
	// finalSaveTimeout bounds the shutdown save after the context is gone.
	finalSaveTimeout = 5 * time.Second
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("MASKBORN_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadSimulation(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel, err := cfg.SlogLevel()
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(cfg.AIDebug || logLevel == slog.LevelDebug)

	slog.Info("maskborn simulator starting",
		"config", cfgPath,
		"log_level", cfg.LogLevel,
		"save", cfg.Save.Backend)

	gd, err := data.Load(cfg.DataFile)
	if err != nil {
		return fmt.Errorf("loading game data: %w", err)
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	slog.Info("random seed", "seed", seed)

	s, err := session.New(gd, rng, present.NewLogger(nil).Collaborators(), session.Options{
		PlayerObjectID:   cfg.PlayerObjectID,
		SpawnPoints:      cfg.SpawnPoints,
		AutoAdvanceDelay: cfg.AutoAdvanceDelay,
		DeathDelay:       cfg.DeathDelay,
	})
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	if store != nil {
		snap, err := store.Load(ctx, cfg.Save.Profile)
		switch {
		case err == nil:
			s.Restore(snap)
			slog.Info("progress loaded", "profile", cfg.Save.Profile, "saved_at", snap.SavedAt, "coins", snap.Coins)
		case errors.Is(err, save.ErrNotFound):
			slog.Info("no saved progress, starting fresh", "profile", cfg.Save.Profile)
		default:
			return fmt.Errorf("loading progress: %w", err)
		}
	}

	pilot := session.NewAutopilot(cfg.AutoAdvanceDelay == 0)
	runner := session.NewRunner(s, session.RunnerConfig{
		TickInterval: cfg.TickInterval,
		Duration:     cfg.Duration,
		Realtime:     cfg.Realtime,
		BeforeTick:   pilot.Step,
	})
	s.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := runner.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("simulation: %w", err)
		}
		return nil
	})

	if store != nil {
		g.Go(func() error {
			return autosave(gctx, runner, store, cfg.Save)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("maskborn simulator stopped", "summary", s.Summary())
	return nil
}

// openStore opens the configured save backend. A nil store means saving is off.
func openStore(ctx context.Context, cfg config.Simulation) (save.Store, func(), error) {
	switch cfg.Save.Backend {
	case config.SaveLocal:
		st, err := save.OpenLocal(cfg.Save.AppName)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("local save opened", "app", cfg.Save.AppName)
		return st, func() {}, nil

	case config.SavePostgres:
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		slog.Info("database connected")
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")
		return database.Progress(), database.Close, nil

	default:
		return nil, func() {}, nil
	}
}

// autosave saves progress every cfg.Autosave and once more after the
// simulation stops.
func autosave(ctx context.Context, runner *session.Runner, store save.Store, cfg config.SaveConfig) error {
	var tick <-chan time.Time
	if cfg.Autosave > 0 {
		t := time.NewTicker(cfg.Autosave)
		defer t.Stop()
		tick = t.C
	}

	for {
		select {
		case <-tick:
			var snap save.Snapshot
			if err := runner.Do(ctx, func(s *session.Session) { snap = s.Capture() }); err != nil {
				continue
			}
			if err := store.Save(ctx, cfg.Profile, snap); err != nil {
				slog.Warn("autosave failed", "profile", cfg.Profile, "error", err)
			}

		case <-runner.Stopped():
			// The tick goroutine is gone, the session can be read directly.
			saveCtx, cancel := context.WithTimeout(context.Background(), finalSaveTimeout)
			defer cancel()
			var snap save.Snapshot
			runner.Inspect(func(s *session.Session) { snap = s.Capture() })
			if err := store.Save(saveCtx, cfg.Profile, snap); err != nil {
				return fmt.Errorf("saving progress: %w", err)
			}
			slog.Info("progress saved", "profile", cfg.Profile, "coins", snap.Coins, "experience", snap.Experience)
			return nil
		}
	}
}
