// Package redis implements the checkpoint store on Redis. Checkpoints
// are stored as JSON strings under per-flow keys.
//
// Usage:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	s := redisstore.New(client)
//	if err := s.Ping(ctx); err != nil { ... }
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/store"
)

// Compile-time interface check.
var _ store.Store = (*Store)(nil)

// Option configures the Store.
type Option func(*Store)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithTTL sets an expiry on checkpoint keys. Zero (the default) keeps
// them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// Store implements store.Store backed by Redis.
type Store struct {
	client redis.Cmdable
	logger *slog.Logger
	ttl    time.Duration
}

// New creates a new Redis-backed store. The caller owns the Redis client
// lifecycle.
func New(client redis.Cmdable, opts ...Option) *Store {
	s := &Store{client: client, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Client returns the underlying Redis client.
func (s *Store) Client() redis.Cmdable { return s.client }

// SaveCheckpoint writes the snapshot as JSON under the flow's key.
func (s *Store) SaveCheckpoint(ctx context.Context, cp *store.Checkpoint) error {
	c := *cp
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	data, err := json.Marshal(&c)
	if err != nil {
		return fmt.Errorf("redis: marshal checkpoint: %w", err)
	}
	if err := s.client.Set(ctx, checkpointKey(cp.FlowID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis: save checkpoint %s: %w", cp.FlowID, err)
	}
	return nil
}

// LoadCheckpoint reads the snapshot for flowID.
func (s *Store) LoadCheckpoint(ctx context.Context, flowID string) (*store.Checkpoint, error) {
	data, err := s.client.Get(ctx, checkpointKey(flowID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, trawl.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: load checkpoint %s: %w", flowID, err)
	}

	var cp store.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("redis: decode checkpoint %s: %w", flowID, err)
	}
	return &cp, nil
}

// DeleteCheckpoint removes the snapshot for flowID.
func (s *Store) DeleteCheckpoint(ctx context.Context, flowID string) error {
	if err := s.client.Del(ctx, checkpointKey(flowID)).Err(); err != nil {
		return fmt.Errorf("redis: delete checkpoint %s: %w", flowID, err)
	}
	return nil
}

// Migrate is a no-op for Redis (schemaless).
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping verifies the Redis connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close is a no-op; the caller owns the Redis client lifecycle.
func (s *Store) Close() error { return nil }
