package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/store"
	"github.com/xraph/trawl/store/sqlite"
)

func openTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "trawl.db"))
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cp := &store.Checkpoint{
		FlowID:         "flow_abc",
		NextSeq:        7,
		Filter:         []byte{0xde, 0xad},
		RunningHandles: []string{"1/2/3"},
	}
	if err := s.SaveCheckpoint(ctx, cp); err != nil {
		t.Fatalf("save error: %v", err)
	}

	got, err := s.LoadCheckpoint(ctx, "flow_abc")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got.NextSeq != 7 {
		t.Errorf("NextSeq = %d, want 7", got.NextSeq)
	}
	if len(got.Filter) != 2 || got.Filter[0] != 0xde {
		t.Errorf("Filter = %v", got.Filter)
	}
	if len(got.RunningHandles) != 1 || got.RunningHandles[0] != "1/2/3" {
		t.Errorf("RunningHandles = %v", got.RunningHandles)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestSQLiteUpsertReplaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.SaveCheckpoint(ctx, &store.Checkpoint{FlowID: "flow_abc", NextSeq: 1})
	if err := s.SaveCheckpoint(ctx, &store.Checkpoint{FlowID: "flow_abc", NextSeq: 9}); err != nil {
		t.Fatalf("second save error: %v", err)
	}

	got, err := s.LoadCheckpoint(ctx, "flow_abc")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if got.NextSeq != 9 {
		t.Errorf("NextSeq = %d, want 9", got.NextSeq)
	}
}

func TestSQLiteLoadMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadCheckpoint(context.Background(), "flow_missing")
	if !errors.Is(err, trawl.ErrCheckpointNotFound) {
		t.Errorf("err = %v, want ErrCheckpointNotFound", err)
	}
}

func TestSQLiteDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_ = s.SaveCheckpoint(ctx, &store.Checkpoint{FlowID: "flow_abc"})
	if err := s.DeleteCheckpoint(ctx, "flow_abc"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if _, err := s.LoadCheckpoint(ctx, "flow_abc"); !errors.Is(err, trawl.ErrCheckpointNotFound) {
		t.Errorf("checkpoint survived delete: %v", err)
	}
}
