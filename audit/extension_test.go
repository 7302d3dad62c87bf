package audit_test

import (
	"context"
	"testing"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/audit"
)

func collector(events *[]*audit.AuditEvent) audit.Recorder {
	return audit.RecorderFunc(func(_ context.Context, e *audit.AuditEvent) error {
		*events = append(*events, e)
		return nil
	})
}

func TestExtensionRecordsJobLifecycle(t *testing.T) {
	var events []*audit.AuditEvent
	ext := audit.New(audit.WithRecorder(collector(&events)))
	ctx := context.Background()

	params := trawl.JobParameters{"page": 1}
	if err := ext.OnJobScheduled(ctx, "job-1", "products", params); err != nil {
		t.Fatal(err)
	}
	if err := ext.OnJobFailed(ctx, "job-1", "products", trawl.OutcomeCancelled, params); err != nil {
		t.Fatal(err)
	}
	if err := ext.OnJobFinished(ctx, "job-1", "products", trawl.OutcomeCancelled); err != nil {
		t.Fatal(err)
	}

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].Action != audit.ActionJobScheduled || events[0].ResourceID != "job-1" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[1].Severity != audit.SeverityWarning {
		t.Errorf("failure severity = %q, want warning", events[1].Severity)
	}
	if events[2].Metadata["outcome"] != string(trawl.OutcomeCancelled) {
		t.Errorf("finished metadata = %v", events[2].Metadata)
	}
}

func TestExtensionActionFilter(t *testing.T) {
	var events []*audit.AuditEvent
	ext := audit.New(
		audit.WithRecorder(collector(&events)),
		audit.WithActions(audit.ActionJobFailed),
	)
	ctx := context.Background()

	ext.OnJobScheduled(ctx, "job-1", "products", nil)
	ext.OnJobSkipped(ctx, "products", nil)
	ext.OnJobFailed(ctx, "job-1", "products", trawl.OutcomeFailed, nil)

	if len(events) != 1 {
		t.Fatalf("events = %d, want only the enabled action", len(events))
	}
	if events[0].Action != audit.ActionJobFailed {
		t.Errorf("action = %q", events[0].Action)
	}
}

func TestExtensionManagerEvents(t *testing.T) {
	var events []*audit.AuditEvent
	ext := audit.New(audit.WithRecorder(collector(&events)))
	ctx := context.Background()

	ext.OnManagerResumed(ctx, 2, 9)
	ext.OnManagerClosed(ctx, "")
	ext.OnManagerClosed(ctx, trawl.OutcomeKilledByOOM)

	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].Metadata["next_seq"] != uint64(9) {
		t.Errorf("resumed metadata = %v", events[0].Metadata)
	}
	if events[1].Severity != audit.SeverityInfo {
		t.Errorf("clean close severity = %q", events[1].Severity)
	}
	if events[2].Severity != audit.SeverityWarning {
		t.Errorf("failed close severity = %q", events[2].Severity)
	}
}
