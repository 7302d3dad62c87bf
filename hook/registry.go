package hook

import (
	"context"
	"log/slog"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// Named entry types pair a hook implementation with the extension name
// captured at registration time. This avoids type-asserting back to
// Extension inside the emit methods.
type jobScheduledEntry struct {
	name string
	hook JobScheduled
}

type jobFinishedEntry struct {
	name string
	hook JobFinished
}

type jobFailedEntry struct {
	name string
	hook JobFailed
}

type jobSkippedEntry struct {
	name string
	hook JobSkipped
}

type managerResumedEntry struct {
	name string
	hook ManagerResumed
}

type managerClosedEntry struct {
	name string
	hook ManagerClosed
}

// Registry holds registered extensions and dispatches lifecycle events
// to them. It type-caches extensions at registration time so emit calls
// iterate only over extensions that implement the relevant hook.
type Registry struct {
	extensions []Extension
	logger     *slog.Logger

	// Type-cached slices for each lifecycle hook.
	jobScheduled   []jobScheduledEntry
	jobFinished    []jobFinishedEntry
	jobFailed      []jobFailedEntry
	jobSkipped     []jobSkippedEntry
	managerResumed []managerResumedEntry
	managerClosed  []managerClosedEntry
}

// NewRegistry creates an extension registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{logger: logger}
}

// Register adds an extension and type-asserts it into all applicable
// hook caches. Extensions are notified in registration order.
func (r *Registry) Register(e Extension) {
	r.extensions = append(r.extensions, e)
	name := e.Name()

	if h, ok := e.(JobScheduled); ok {
		r.jobScheduled = append(r.jobScheduled, jobScheduledEntry{name, h})
	}
	if h, ok := e.(JobFinished); ok {
		r.jobFinished = append(r.jobFinished, jobFinishedEntry{name, h})
	}
	if h, ok := e.(JobFailed); ok {
		r.jobFailed = append(r.jobFailed, jobFailedEntry{name, h})
	}
	if h, ok := e.(JobSkipped); ok {
		r.jobSkipped = append(r.jobSkipped, jobSkippedEntry{name, h})
	}
	if h, ok := e.(ManagerResumed); ok {
		r.managerResumed = append(r.managerResumed, managerResumedEntry{name, h})
	}
	if h, ok := e.(ManagerClosed); ok {
		r.managerClosed = append(r.managerClosed, managerClosedEntry{name, h})
	}
}

// Extensions returns all registered extensions.
func (r *Registry) Extensions() []Extension { return r.extensions }

// EmitJobScheduled notifies all extensions that implement JobScheduled.
func (r *Registry) EmitJobScheduled(ctx context.Context, h platform.Handle, spider string, params trawl.JobParameters) {
	for _, e := range r.jobScheduled {
		if err := e.hook.OnJobScheduled(ctx, h, spider, params); err != nil {
			r.logHookError("OnJobScheduled", e.name, err)
		}
	}
}

// EmitJobFinished notifies all extensions that implement JobFinished.
func (r *Registry) EmitJobFinished(ctx context.Context, h platform.Handle, spider string, outcome trawl.Outcome) {
	for _, e := range r.jobFinished {
		if err := e.hook.OnJobFinished(ctx, h, spider, outcome); err != nil {
			r.logHookError("OnJobFinished", e.name, err)
		}
	}
}

// EmitJobFailed notifies all extensions that implement JobFailed.
func (r *Registry) EmitJobFailed(ctx context.Context, h platform.Handle, spider string, outcome trawl.Outcome, params trawl.JobParameters) {
	for _, e := range r.jobFailed {
		if err := e.hook.OnJobFailed(ctx, h, spider, outcome, params); err != nil {
			r.logHookError("OnJobFailed", e.name, err)
		}
	}
}

// EmitJobSkipped notifies all extensions that implement JobSkipped.
func (r *Registry) EmitJobSkipped(ctx context.Context, spider string, params trawl.JobParameters) {
	for _, e := range r.jobSkipped {
		if err := e.hook.OnJobSkipped(ctx, spider, params); err != nil {
			r.logHookError("OnJobSkipped", e.name, err)
		}
	}
}

// EmitManagerResumed notifies all extensions that implement ManagerResumed.
func (r *Registry) EmitManagerResumed(ctx context.Context, running int, nextSeq uint64) {
	for _, e := range r.managerResumed {
		if err := e.hook.OnManagerResumed(ctx, running, nextSeq); err != nil {
			r.logHookError("OnManagerResumed", e.name, err)
		}
	}
}

// EmitManagerClosed notifies all extensions that implement ManagerClosed.
func (r *Registry) EmitManagerClosed(ctx context.Context, closeReason trawl.Outcome) {
	for _, e := range r.managerClosed {
		if err := e.hook.OnManagerClosed(ctx, closeReason); err != nil {
			r.logHookError("OnManagerClosed", e.name, err)
		}
	}
}

// logHookError records an extension hook failure. Hook errors are never
// propagated to the control loop.
func (r *Registry) logHookError(hookName, extName string, err error) {
	r.logger.Error("extension hook error",
		slog.String("hook", hookName),
		slog.String("extension", extName),
		slog.String("error", err.Error()),
	)
}
