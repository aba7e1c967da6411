package model

import (
	"errors"
	"fmt"
	"time"
)

// WaveEntry emits Count enemies of one kind, one every SpawnRate,
// after waiting StartDelay.
type WaveEntry struct {
	EnemyID    string        `yaml:"enemy"`
	Count      int           `yaml:"count"`
	SpawnRate  time.Duration `yaml:"spawn_rate"`
	StartDelay time.Duration `yaml:"start_delay"`
}

// Wave is an ordered batch of spawn entries.
type Wave struct {
	Name    string      `yaml:"name"`
	Entries []WaveEntry `yaml:"entries"`
}

// TotalEnemies returns how many enemies the wave emits.
func (w Wave) TotalEnemies() int {
	n := 0
	for _, e := range w.Entries {
		n += e.Count
	}
	return n
}

// Validate checks counts and timings; known reports whether an enemy id exists.
func (w Wave) Validate(known func(id string) bool) error {
	var errs []error
	for i, e := range w.Entries {
		if e.Count < 0 {
			errs = append(errs, fmt.Errorf("entry %d: count must not be negative", i))
		}
		if e.SpawnRate < 0 || e.StartDelay < 0 {
			errs = append(errs, fmt.Errorf("entry %d: negative delay", i))
		}
		if known != nil && !known(e.EnemyID) {
			errs = append(errs, fmt.Errorf("entry %d: unknown enemy %q", i, e.EnemyID))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("wave %q: %w", w.Name, err)
	}
	return nil
}
