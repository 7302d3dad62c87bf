// Package hook defines the lifecycle extension system for trawl.
// Extensions are notified of manager lifecycle events (job scheduled,
// job finished, manager resumed, etc.) and can react to them, for
// example with auditing or alerting.
//
// Each lifecycle hook is a separate interface so extensions opt in only
// to the events they care about.
package hook

import (
	"context"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// Extension is the base interface all extensions must implement.
type Extension interface {
	// Name returns a unique human-readable name for the extension.
	Name() string
}

// JobScheduled is called after a job is successfully submitted to the
// platform.
type JobScheduled interface {
	OnJobScheduled(ctx context.Context, h platform.Handle, spider string, params trawl.JobParameters) error
}

// JobFinished is called when reconciliation observes a terminal outcome
// for a job, whether successful or failed.
type JobFinished interface {
	OnJobFinished(ctx context.Context, h platform.Handle, spider string, outcome trawl.Outcome) error
}

// JobFailed is called in addition to JobFinished when the outcome is in
// the manager's failed set.
type JobFailed interface {
	OnJobFailed(ctx context.Context, h platform.Handle, spider string, outcome trawl.Outcome, params trawl.JobParameters) error
}

// JobSkipped is called when the membership filter discards a parameter
// set as already scheduled.
type JobSkipped interface {
	OnJobSkipped(ctx context.Context, spider string, params trawl.JobParameters) error
}

// ManagerResumed is called once at startup after prior jobs have been
// recovered from the platform's persisted metadata.
type ManagerResumed interface {
	OnManagerResumed(ctx context.Context, running int, nextSeq uint64) error
}

// ManagerClosed is called when the control loop stops. closeReason is
// empty when no job failure was latched.
type ManagerClosed interface {
	OnManagerClosed(ctx context.Context, closeReason trawl.Outcome) error
}
