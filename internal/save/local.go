package save

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quasilyte/gdata/v2"
)

// snapshots are stored as properties of this object, one per profile.
const profilesObject = "profiles"

// LocalStore keeps snapshots in the per-user application data directory.
type LocalStore struct {
	m *gdata.Manager
}

// OpenLocal opens the data directory of appName.
func OpenLocal(appName string) (*LocalStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("opening local save %s: %w", appName, err)
	}
	return &LocalStore{m: m}, nil
}

// Save writes snap under profile, replacing the previous save.
func (s *LocalStore) Save(_ context.Context, profile string, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	if err := s.m.SaveObjectProp(profilesObject, profile, data); err != nil {
		return fmt.Errorf("saving profile %s: %w", profile, err)
	}
	slog.Debug("progress saved", "store", "local", "profile", profile, "bytes", len(data))
	return nil
}

// Load reads the save of profile. Returns ErrNotFound if there is none.
func (s *LocalStore) Load(_ context.Context, profile string) (Snapshot, error) {
	if !s.m.ObjectPropExists(profilesObject, profile) {
		return Snapshot{}, ErrNotFound
	}
	data, err := s.m.LoadObjectProp(profilesObject, profile)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading profile %s: %w", profile, err)
	}
	snap, err := Decode(data)
	if err != nil {
		return Snapshot{}, fmt.Errorf("loading profile %s: %w", profile, err)
	}
	return snap, nil
}
