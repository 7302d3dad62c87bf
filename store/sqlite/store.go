// Package sqlite implements the checkpoint store on SQLite via the
// cgo-free modernc driver. Suitable for single-host managers that want
// restart durability without running a database server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

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

// Store implements store.Store backed by a SQLite database file.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite database at path and runs
// migrations. Use ":memory:" for an ephemeral database.
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// SQLite prefers a single writer connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	s := &Store{db: db, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// New wraps an existing *sql.DB. The caller owns the db lifecycle and
// must call Migrate before use.
func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DB returns the underlying *sql.DB for advanced usage.
func (s *Store) DB() *sql.DB { return s.db }

// Migrate creates the checkpoint table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: migrate: %w", err)
	}
	return nil
}

// SaveCheckpoint upserts the snapshot for the flow.
func (s *Store) SaveCheckpoint(ctx context.Context, cp *store.Checkpoint) error {
	updatedAt := cp.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	handles, err := encodeHandles(cp.RunningHandles)
	if err != nil {
		return fmt.Errorf("sqlite: encode handles: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO trawl_checkpoints (flow_id, next_seq, filter, running_handles, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (flow_id) DO UPDATE SET
			next_seq        = excluded.next_seq,
			filter          = excluded.filter,
			running_handles = excluded.running_handles,
			updated_at      = excluded.updated_at`,
		cp.FlowID, int64(cp.NextSeq), cp.Filter, handles, updatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save checkpoint %s: %w", cp.FlowID, err)
	}
	return nil
}

// LoadCheckpoint reads the snapshot for flowID.
func (s *Store) LoadCheckpoint(ctx context.Context, flowID string) (*store.Checkpoint, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT next_seq, filter, running_handles, updated_at
		FROM trawl_checkpoints WHERE flow_id = ?`, flowID)

	var (
		nextSeq   int64
		filter    []byte
		handles   string
		updatedAt string
	)
	err := row.Scan(&nextSeq, &filter, &handles, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, trawl.ErrCheckpointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load checkpoint %s: %w", flowID, err)
	}

	cp := &store.Checkpoint{
		FlowID:  flowID,
		NextSeq: uint64(nextSeq),
		Filter:  filter,
	}
	if cp.RunningHandles, err = decodeHandles(handles); err != nil {
		return nil, fmt.Errorf("sqlite: decode handles for %s: %w", flowID, err)
	}
	if cp.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("sqlite: parse updated_at for %s: %w", flowID, err)
	}
	return cp, nil
}

// DeleteCheckpoint removes the snapshot for flowID.
func (s *Store) DeleteCheckpoint(ctx context.Context, flowID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM trawl_checkpoints WHERE flow_id = ?`, flowID); err != nil {
		return fmt.Errorf("sqlite: delete checkpoint %s: %w", flowID, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
