// Package store defines checkpoint persistence for crawl managers.
//
// A checkpoint snapshots the scheduling state that must survive a
// process restart even when the platform's persisted job metadata is
// incomplete: the next sequence number, the membership-filter bits and
// the handles that were in flight. Checkpoints are keyed by flow ID.
// Backends: Memory, Redis, and SQLite.
package store

import (
	"context"
	"time"
)

// Checkpoint is one durable snapshot of a manager's scheduling state.
type Checkpoint struct {
	// FlowID identifies the logical workflow the snapshot belongs to.
	FlowID string `json:"flow_id"`

	// NextSeq is the next base sequence number to mint.
	NextSeq uint64 `json:"next_seq"`

	// Filter is the serialized membership-filter bits.
	Filter []byte `json:"filter,omitempty"`

	// RunningHandles are the job handles in flight at snapshot time.
	RunningHandles []string `json:"running_handles,omitempty"`

	// UpdatedAt is when the snapshot was taken.
	UpdatedAt time.Time `json:"updated_at"`
}

// Store persists manager checkpoints.
type Store interface {
	// SaveCheckpoint writes the snapshot, replacing any previous one
	// for the same flow.
	SaveCheckpoint(ctx context.Context, cp *Checkpoint) error

	// LoadCheckpoint reads the snapshot for the flow. Returns
	// trawl.ErrCheckpointNotFound when none exists.
	LoadCheckpoint(ctx context.Context, flowID string) (*Checkpoint, error)

	// DeleteCheckpoint removes the snapshot for the flow, if any.
	DeleteCheckpoint(ctx context.Context, flowID string) error

	// Migrate runs schema migrations, where the backend has a schema.
	Migrate(ctx context.Context) error

	// Ping checks backend connectivity.
	Ping(ctx context.Context) error

	// Close closes the store.
	Close() error
}
