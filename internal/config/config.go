// Package config loads the simulator configuration: a YAML file with
// defaults for missing keys, then MASKBORN_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/maskborn/internal/model"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MASKBORN_"

// SaveBackend selects where player progress is persisted.
type SaveBackend string

const (
	SaveNone     SaveBackend = "none"
	SaveLocal    SaveBackend = "local"
	SavePostgres SaveBackend = "postgres"
)

// Simulation holds all configuration for the headless simulator.
type Simulation struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// AIDebug enables per-tick AI debug logging.
	AIDebug bool `yaml:"ai_debug" env:"AI_DEBUG"`

	// Clock
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	Duration     time.Duration `yaml:"duration" env:"DURATION"` // 0 = until interrupted
	Realtime     bool          `yaml:"realtime" env:"REALTIME"` // pace ticks with a wall clock ticker
	Seed         uint64        `yaml:"seed" env:"SEED"`         // 0 = time based

	// Game
	DataFile         string        `yaml:"data_file" env:"DATA_FILE"` // empty = embedded data
	AutoAdvanceDelay time.Duration `yaml:"auto_advance_delay" env:"AUTO_ADVANCE_DELAY"`
	DeathDelay       time.Duration `yaml:"death_delay" env:"DEATH_DELAY"`
	PlayerObjectID   uint32        `yaml:"player_object_id" env:"PLAYER_OBJECT_ID"`
	SpawnPoints      []model.Vec3  `yaml:"spawn_points"`

	// Persistence
	Save     SaveConfig     `yaml:"save" envPrefix:"SAVE_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`
}

// SaveConfig controls progress persistence.
type SaveConfig struct {
	Backend  SaveBackend   `yaml:"backend" env:"BACKEND"`
	Profile  string        `yaml:"profile" env:"PROFILE"`
	AppName  string        `yaml:"app_name" env:"APP_NAME"`
	Autosave time.Duration `yaml:"autosave" env:"AUTOSAVE"` // 0 = only on shutdown
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulation returns Simulation config with sensible defaults.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:         "info",
		TickInterval:     100 * time.Millisecond,
		Duration:         2 * time.Minute,
		AutoAdvanceDelay: 3 * time.Second,
		DeathDelay:       5 * time.Second,
		PlayerObjectID:   1,
		SpawnPoints: []model.Vec3{
			{X: 12, Z: 0},
			{X: -12, Z: 0},
			{X: 0, Z: 12},
			{X: 0, Z: -12},
		},
		Save: SaveConfig{
			Backend: SaveNone,
			Profile: "default",
			AppName: "maskborn",
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "maskborn",
			Password: "maskborn",
			DBName:   "maskborn",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulation loads simulator config from a YAML file and applies
// environment overrides. If the file doesn't exist, defaults are used.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks values the simulator cannot run with.
func (c Simulation) Validate() error {
	var errs []error
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval))
	}
	if c.Duration < 0 || c.AutoAdvanceDelay < 0 || c.DeathDelay < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	switch c.Save.Backend {
	case SaveNone, SaveLocal, SavePostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown save backend %q", c.Save.Backend))
	}
	if c.Save.Backend != SaveNone && c.Save.Profile == "" {
		errs = append(errs, errors.New("save profile is empty"))
	}
	if c.Save.Backend == SaveLocal && c.Save.AppName == "" {
		errs = append(errs, errors.New("save app_name is empty"))
	}
	return errors.Join(errs...)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c Simulation) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
