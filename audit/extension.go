package audit

import (
	"context"
	"log/slog"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/hook"
	"github.com/xraph/trawl/platform"
)

// Compile-time interface checks.
var (
	_ hook.Extension      = (*Extension)(nil)
	_ hook.JobScheduled   = (*Extension)(nil)
	_ hook.JobFinished    = (*Extension)(nil)
	_ hook.JobFailed      = (*Extension)(nil)
	_ hook.JobSkipped     = (*Extension)(nil)
	_ hook.ManagerResumed = (*Extension)(nil)
	_ hook.ManagerClosed  = (*Extension)(nil)
)

// AuditEvent is one recorded lifecycle event.
type AuditEvent struct {
	// What happened
	Action   string `json:"action"`
	Resource string `json:"resource"`
	Category string `json:"category"`

	// Details
	ResourceID string         `json:"resource_id,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Severity   string         `json:"severity"`
}

// Recorder is the interface audit backends implement. It is defined
// locally so this package carries no backend dependency; callers inject
// the bridge to their system at wiring time.
type Recorder interface {
	// Record persists a fully-formed audit event.
	Record(ctx context.Context, event *AuditEvent) error
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension records manager lifecycle events as audit events.
type Extension struct {
	recorder Recorder
	logger   *slog.Logger
	enabled  map[string]bool // nil means all actions enabled
}

// New creates the audit extension. With no options it records every
// action through the logger.
func New(opts ...Option) *Extension {
	e := &Extension{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.recorder == nil {
		e.recorder = slogRecorder{logger: e.logger}
	}
	return e
}

// Name returns "audit".
func (e *Extension) Name() string { return "audit" }

func (e *Extension) record(ctx context.Context, event *AuditEvent) error {
	if e.enabled != nil && !e.enabled[event.Action] {
		return nil
	}
	return e.recorder.Record(ctx, event)
}

// OnJobScheduled records a job.scheduled event.
func (e *Extension) OnJobScheduled(ctx context.Context, h platform.Handle, spider string, params trawl.JobParameters) error {
	return e.record(ctx, &AuditEvent{
		Action:     ActionJobScheduled,
		Resource:   ResourceJob,
		Category:   CategoryJob,
		ResourceID: h.String(),
		Severity:   SeverityInfo,
		Metadata: map[string]any{
			"spider": spider,
			"args":   params.SpiderArgs(),
		},
	})
}

// OnJobFinished records a job.finished event.
func (e *Extension) OnJobFinished(ctx context.Context, h platform.Handle, spider string, outcome trawl.Outcome) error {
	return e.record(ctx, &AuditEvent{
		Action:     ActionJobFinished,
		Resource:   ResourceJob,
		Category:   CategoryJob,
		ResourceID: h.String(),
		Severity:   SeverityInfo,
		Metadata: map[string]any{
			"spider":  spider,
			"outcome": string(outcome),
		},
	})
}

// OnJobFailed records a job.failed event.
func (e *Extension) OnJobFailed(ctx context.Context, h platform.Handle, spider string, outcome trawl.Outcome, params trawl.JobParameters) error {
	return e.record(ctx, &AuditEvent{
		Action:     ActionJobFailed,
		Resource:   ResourceJob,
		Category:   CategoryJob,
		ResourceID: h.String(),
		Severity:   SeverityWarning,
		Metadata: map[string]any{
			"spider":  spider,
			"outcome": string(outcome),
			"args":    params.SpiderArgs(),
		},
	})
}

// OnJobSkipped records a job.skipped event.
func (e *Extension) OnJobSkipped(ctx context.Context, spider string, params trawl.JobParameters) error {
	return e.record(ctx, &AuditEvent{
		Action:   ActionJobSkipped,
		Resource: ResourceJob,
		Category: CategoryJob,
		Severity: SeverityInfo,
		Metadata: map[string]any{
			"spider": spider,
			"args":   params.SpiderArgs(),
		},
	})
}

// OnManagerResumed records a manager.resumed event.
func (e *Extension) OnManagerResumed(ctx context.Context, running int, nextSeq uint64) error {
	return e.record(ctx, &AuditEvent{
		Action:   ActionManagerResumed,
		Resource: ResourceManager,
		Category: CategoryManager,
		Severity: SeverityInfo,
		Metadata: map[string]any{
			"running":  running,
			"next_seq": nextSeq,
		},
	})
}

// OnManagerClosed records a manager.closed event. Severity is warning
// when a failing outcome was latched as the close reason.
func (e *Extension) OnManagerClosed(ctx context.Context, closeReason trawl.Outcome) error {
	severity := SeverityInfo
	if closeReason != "" {
		severity = SeverityWarning
	}
	return e.record(ctx, &AuditEvent{
		Action:   ActionManagerClosed,
		Resource: ResourceManager,
		Category: CategoryManager,
		Severity: severity,
		Metadata: map[string]any{
			"close_reason": string(closeReason),
		},
	})
}

// slogRecorder is the default Recorder, writing events to a logger.
type slogRecorder struct {
	logger *slog.Logger
}

func (r slogRecorder) Record(_ context.Context, event *AuditEvent) error {
	level := slog.LevelInfo
	if event.Severity == SeverityWarning {
		level = slog.LevelWarn
	}
	r.logger.Log(context.Background(), level, "audit event",
		slog.String("action", event.Action),
		slog.String("resource", event.Resource),
		slog.String("resource_id", event.ResourceID),
		slog.Any("metadata", event.Metadata),
	)
	return nil
}
