package middleware_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/middleware"
	"github.com/xraph/trawl/platform"
	"github.com/xraph/trawl/platform/memory"
)

func TestChainOrder(t *testing.T) {
	var calls []string
	mark := func(name string) middleware.Middleware {
		return func(next platform.Client) platform.Client {
			return &markerClient{next: next, name: name, calls: &calls}
		}
	}

	p := memory.New()
	client := middleware.Chain(p, mark("outer"), mark("inner"))

	if _, err := client.Submit(context.Background(), "products", platform.SubmitRequest{}); err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if len(calls) != 2 || calls[0] != "outer" || calls[1] != "inner" {
		t.Errorf("calls = %v, want [outer inner]", calls)
	}
}

func TestChainPreservesResumerDiscovery(t *testing.T) {
	p := memory.New()
	client := middleware.Chain(p,
		middleware.Logging(slog.Default()),
		middleware.Metrics(),
		middleware.Tracing(),
	)

	r, ok := platform.FindResumer(client)
	if !ok {
		t.Fatal("Resumer not discoverable through the decorator chain")
	}
	if _, err := r.RunningJobs(context.Background()); err != nil {
		t.Fatalf("RunningJobs error: %v", err)
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	p := memory.New()
	client := middleware.Logging(slog.Default())(p)

	h, err := client.Submit(context.Background(), "products", platform.SubmitRequest{})
	if err != nil || h == "" {
		t.Fatalf("submit = (%q, %v)", h, err)
	}

	p.Finish(h, trawl.OutcomeFinished)
	outcome, done, err := client.Outcome(context.Background(), h)
	if err != nil || !done || outcome != trawl.OutcomeFinished {
		t.Fatalf("outcome = (%q, %v, %v)", outcome, done, err)
	}
}

type markerClient struct {
	next  platform.Client
	name  string
	calls *[]string
}

func (m *markerClient) Submit(ctx context.Context, spider string, req platform.SubmitRequest) (platform.Handle, error) {
	*m.calls = append(*m.calls, m.name)
	return m.next.Submit(ctx, spider, req)
}

func (m *markerClient) Outcome(ctx context.Context, h platform.Handle) (trawl.Outcome, bool, error) {
	return m.next.Outcome(ctx, h)
}

func (m *markerClient) Unwrap() platform.Client { return m.next }
