package crawl_test

import (
	"testing"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/crawl"
	"github.com/xraph/trawl/platform/memory"
)

func TestPeriodicResubmitsAfterFinish(t *testing.T) {
	p := memory.New()
	m := newTestManager(t, p, crawl.NewPeriodic(), testConfig())

	tick(t, m)
	if p.SubmissionCount() != 1 {
		t.Fatalf("SubmissionCount = %d, want 1", p.SubmissionCount())
	}

	// While running: no resubmission.
	tick(t, m)
	if p.SubmissionCount() != 1 {
		t.Fatalf("SubmissionCount while running = %d, want 1", p.SubmissionCount())
	}

	p.FinishAll(trawl.OutcomeFinished)
	tick(t, m)
	if p.SubmissionCount() != 2 {
		t.Errorf("SubmissionCount after finish = %d, want 2", p.SubmissionCount())
	}
}

func TestPeriodicNeverDone(t *testing.T) {
	p := memory.New()
	m := newTestManager(t, p, crawl.NewPeriodic(), testConfig())

	// Alternate success and failure outcomes over many cycles; the
	// policy must keep cycling and never latch a close reason.
	outcomes := []trawl.Outcome{trawl.OutcomeFinished, trawl.OutcomeFailed}
	for i := 0; i < 100; i++ {
		if d := tick(t, m); d != crawl.Continue {
			t.Fatalf("tick %d = %v, want Continue", i, d)
		}
		p.FinishAll(outcomes[i%len(outcomes)])
	}

	if m.CloseReason() != "" {
		t.Errorf("CloseReason = %q, periodic failures must not latch", m.CloseReason())
	}
	if p.SubmissionCount() < 50 {
		t.Errorf("SubmissionCount = %d, cycle appears stalled", p.SubmissionCount())
	}
}
