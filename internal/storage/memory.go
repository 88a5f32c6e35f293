package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jwebster45206/emberfall/pkg/engine"
)

// MemoryStorage implements Storage in process memory. Used by tests and as
// the local-mode fallback when Redis is unreachable at startup. Sessions are
// stored serialized so loads go through the same validation as Redis.
type MemoryStorage struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory storage instance.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{sessions: make(map[string][]byte)}
}

func (m *MemoryStorage) Ping(ctx context.Context) error { return nil }

func (m *MemoryStorage) Close() error { return nil }

func (m *MemoryStorage) SaveSession(ctx context.Context, userID string, snap *engine.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = data
	return nil
}

func (m *MemoryStorage) LoadSession(ctx context.Context, userID string) (*engine.Snapshot, error) {
	m.mu.RLock()
	data, ok := m.sessions[userID]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: user %q", ErrNotFound, userID)
	}
	return DecodeSnapshot(data)
}

func (m *MemoryStorage) DeleteSession(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}
