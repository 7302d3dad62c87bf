package crawl_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/crawl"
	"github.com/xraph/trawl/platform"
)

// quietLogger keeps test output readable.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() trawl.Config {
	cfg := trawl.DefaultConfig()
	cfg.Spider = "products"
	return cfg
}

func newTestManager(t *testing.T, p platform.Client, policy crawl.Policy, cfg trawl.Config, opts ...crawl.Option) *crawl.Manager {
	t.Helper()
	opts = append([]crawl.Option{
		crawl.WithConfig(cfg),
		crawl.WithPolicy(policy),
		crawl.WithLogger(quietLogger()),
	}, opts...)
	m, err := crawl.NewManager(p, opts...)
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	return m
}

func platformSubmitRequest() platform.SubmitRequest {
	return platform.SubmitRequest{Args: map[string]string{}}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func tick(t *testing.T, m *crawl.Manager) crawl.Decision {
	t.Helper()
	d, err := m.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick error: %v", err)
	}
	return d
}
