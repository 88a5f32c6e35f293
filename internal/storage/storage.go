// Package storage persists session snapshots keyed by user id. Saves are
// last-write-wins; there is no merge or conflict resolution.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jwebster45206/emberfall/pkg/engine"
)

var (
	// ErrNotFound is returned when no session exists for the user.
	ErrNotFound = errors.New("session not found")

	// ErrUnavailable is returned when the backing store cannot be reached.
	ErrUnavailable = errors.New("storage unavailable")
)

// Storage defines session snapshot persistence.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Session operations
	SaveSession(ctx context.Context, userID string, snap *engine.Snapshot) error
	LoadSession(ctx context.Context, userID string) (*engine.Snapshot, error)
	DeleteSession(ctx context.Context, userID string) error
}

// requiredKeys are the top-level snapshot keys a stored document must carry.
// Guards against persisting or serving truncated payloads.
var requiredKeys = []string{"currentSceneId", "log", "visitedScenes", "conversation"}

// DecodeSnapshot unmarshals and validates a stored snapshot document.
func DecodeSnapshot(data []byte) (*engine.Snapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return nil, fmt.Errorf("snapshot is missing required key %q", key)
		}
	}

	var snap engine.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
