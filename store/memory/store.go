// Package memory implements an in-memory checkpoint store. Intended for
// unit testing and development; snapshots do not survive the process.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Store is a fully in-memory checkpoint store. Safe for concurrent
// access.
type Store struct {
	mu          sync.RWMutex
	checkpoints map[string]*store.Checkpoint
}

// New returns a new empty Store.
func New() *Store {
	return &Store{checkpoints: make(map[string]*store.Checkpoint)}
}

// SaveCheckpoint stores a copy of cp keyed by its flow ID.
func (m *Store) SaveCheckpoint(_ context.Context, cp *store.Checkpoint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := *cp
	c.Filter = append([]byte(nil), cp.Filter...)
	c.RunningHandles = append([]string(nil), cp.RunningHandles...)
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	m.checkpoints[cp.FlowID] = &c
	return nil
}

// LoadCheckpoint returns a copy of the snapshot for flowID.
func (m *Store) LoadCheckpoint(_ context.Context, flowID string) (*store.Checkpoint, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cp, ok := m.checkpoints[flowID]
	if !ok {
		return nil, trawl.ErrCheckpointNotFound
	}
	c := *cp
	c.Filter = append([]byte(nil), cp.Filter...)
	c.RunningHandles = append([]string(nil), cp.RunningHandles...)
	return &c, nil
}

// DeleteCheckpoint removes the snapshot for flowID.
func (m *Store) DeleteCheckpoint(_ context.Context, flowID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.checkpoints, flowID)
	return nil
}

// Migrate is a no-op for the memory store.
func (m *Store) Migrate(_ context.Context) error { return nil }

// Ping always succeeds for the memory store.
func (m *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op for the memory store.
func (m *Store) Close() error { return nil }
