package hook_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/hook"
	"github.com/xraph/trawl/platform"
)

// recorder implements a subset of the hook interfaces and records calls.
type recorder struct {
	scheduled []platform.Handle
	finished  []trawl.Outcome
	closed    []trawl.Outcome
	err       error
}

func (r *recorder) Name() string { return "recorder" }

func (r *recorder) OnJobScheduled(_ context.Context, h platform.Handle, _ string, _ trawl.JobParameters) error {
	r.scheduled = append(r.scheduled, h)
	return r.err
}

func (r *recorder) OnJobFinished(_ context.Context, _ platform.Handle, _ string, outcome trawl.Outcome) error {
	r.finished = append(r.finished, outcome)
	return r.err
}

func (r *recorder) OnManagerClosed(_ context.Context, reason trawl.Outcome) error {
	r.closed = append(r.closed, reason)
	return r.err
}

func TestRegistryDispatchesToImplementedHooks(t *testing.T) {
	rec := &recorder{}
	reg := hook.NewRegistry(nil)
	reg.Register(rec)

	ctx := context.Background()
	reg.EmitJobScheduled(ctx, "1/2/3", "products", nil)
	reg.EmitJobFinished(ctx, "1/2/3", "products", trawl.OutcomeFinished)
	reg.EmitManagerClosed(ctx, trawl.OutcomeFailed)

	// JobFailed is not implemented by recorder; emitting must be a no-op.
	reg.EmitJobFailed(ctx, "1/2/3", "products", trawl.OutcomeFailed, nil)

	if len(rec.scheduled) != 1 || rec.scheduled[0] != "1/2/3" {
		t.Errorf("scheduled = %v", rec.scheduled)
	}
	if len(rec.finished) != 1 || rec.finished[0] != trawl.OutcomeFinished {
		t.Errorf("finished = %v", rec.finished)
	}
	if len(rec.closed) != 1 || rec.closed[0] != trawl.OutcomeFailed {
		t.Errorf("closed = %v", rec.closed)
	}
}

func TestRegistryHookErrorsAreSwallowed(t *testing.T) {
	rec := &recorder{err: errors.New("hook boom")}
	reg := hook.NewRegistry(nil)
	reg.Register(rec)

	// Must not panic or propagate.
	reg.EmitJobScheduled(context.Background(), "1/2/3", "products", nil)
	if len(rec.scheduled) != 1 {
		t.Errorf("hook not invoked despite error: %v", rec.scheduled)
	}
}

func TestRegistryNotifiesInRegistrationOrder(t *testing.T) {
	var order []string
	mk := func(name string) hook.Extension {
		return &namedHook{name: name, fn: func() { order = append(order, name) }}
	}
	reg := hook.NewRegistry(nil)
	reg.Register(mk("first"))
	reg.Register(mk("second"))

	reg.EmitManagerClosed(context.Background(), "")
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("order = %v", order)
	}
	if len(reg.Extensions()) != 2 {
		t.Errorf("Extensions() = %d entries", len(reg.Extensions()))
	}
}

type namedHook struct {
	name string
	fn   func()
}

func (n *namedHook) Name() string { return n.name }

func (n *namedHook) OnManagerClosed(context.Context, trawl.Outcome) error {
	n.fn()
	return nil
}
