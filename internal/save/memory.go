package save

import (
	"context"
	"sync"
)

// MemoryStore keeps encoded snapshots in memory. Used when persistence
// is disabled and in tests.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, profile string, snap Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[profile] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, profile string) (Snapshot, error) {
	s.mu.Lock()
	data, ok := s.data[profile]
	s.mu.Unlock()
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return Decode(data)
}
