package document

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
)

var ErrNotFound = errors.New("drawing not found")

// Store persists snapshots by name.
type Store interface {
	Save(ctx context.Context, name string, snap *Snapshot) error
	Load(ctx context.Context, name string) (*Snapshot, error)
	List(ctx context.Context) ([]string, error)
}

// MemStore keeps snapshots in memory. The zero value is ready to use.
type MemStore struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

func (m *MemStore) Save(_ context.Context, name string, snap *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snaps == nil {
		m.snaps = make(map[string]Snapshot)
	}
	m.snaps[name] = *snap
	return nil
}

func (m *MemStore) Load(_ context.Context, name string) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snaps[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &snap, nil
}

func (m *MemStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.snaps)), nil
}
