package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/emberfall/pkg/engine"
	"github.com/redis/go-redis/v9"
)

// RedisStorage implements Storage backed by Redis. Sessions are stored as
// JSON documents under "session:" keys with no expiration; only an explicit
// delete removes them.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis storage instance from a redis:// URL.
// Connectivity is not checked here; callers probe with Ping or
// WaitForConnection.
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
	}, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping failed: %v", ErrUnavailable, err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available during startup.
func (r *RedisStorage) WaitForConnection(ctx context.Context, maxRetries int) error {
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("%w: redis did not become available after %d attempts", ErrUnavailable, maxRetries)
}

func sessionKey(userID string) string {
	return "session:" + userID
}

func (r *RedisStorage) SaveSession(ctx context.Context, userID string, snap *engine.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		r.logger.Error("Failed to marshal session", "user", userID, "error", err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := r.client.Set(ctx, sessionKey(userID), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save session", "user", userID, "error", err)
		return fmt.Errorf("%w: failed to save session: %v", ErrUnavailable, err)
	}
	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, userID string) (*engine.Snapshot, error) {
	data, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: user %q", ErrNotFound, userID)
		}
		r.logger.Error("Failed to load session", "user", userID, "error", err)
		return nil, fmt.Errorf("%w: failed to load session: %v", ErrUnavailable, err)
	}

	snap, err := DecodeSnapshot([]byte(data))
	if err != nil {
		r.logger.Error("Failed to decode session", "user", userID, "error", err)
		return nil, err
	}
	return snap, nil
}

func (r *RedisStorage) DeleteSession(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		r.logger.Error("Failed to delete session", "user", userID, "error", err)
		return fmt.Errorf("%w: failed to delete session: %v", ErrUnavailable, err)
	}
	return nil
}
