// Package registry tracks the jobs a manager currently has in flight on
// the platform and reconciles them against the platform's reported
// outcomes.
//
// A Registry is owned exclusively by the manager's control-loop
// goroutine; it carries no internal locking.
package registry

import (
	"context"
	"log/slog"
	"sort"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// Entry records one in-flight job: the spider it runs and the parameter
// override it was submitted with. Every handle present in the registry
// corresponds to a job not yet observed as finished.
type Entry struct {
	Spider string
	Params trawl.JobParameters
}

// BadOutcomeHook is invoked during reconciliation for every job that
// finished with an outcome in the failed set. Policies override it to
// latch a close reason or to ignore failures.
type BadOutcomeHook func(ctx context.Context, spider string, outcome trawl.Outcome, params trawl.JobParameters, h platform.Handle)

// Registry maps in-flight job handles to their originating entries.
type Registry struct {
	entries map[platform.Handle]Entry
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[platform.Handle]Entry)}
}

// Add records a submitted job. The entry keeps its own copy of params.
func (r *Registry) Add(h platform.Handle, spider string, params trawl.JobParameters) {
	r.entries[h] = Entry{Spider: spider, Params: params.Clone()}
}

// Remove drops the entry for h, if present.
func (r *Registry) Remove(h platform.Handle) {
	delete(r.entries, h)
}

// Get returns the entry for h.
func (r *Registry) Get(h platform.Handle) (Entry, bool) {
	e, ok := r.entries[h]
	return e, ok
}

// Len returns the number of in-flight jobs.
func (r *Registry) Len() int { return len(r.entries) }

// Handles returns the registered handles in sorted order.
func (r *Registry) Handles() []platform.Handle {
	out := make([]platform.Handle, 0, len(r.entries))
	for h := range r.entries {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Reconcile queries the platform outcome of every registered handle.
// Finished jobs are removed from the registry; those with an outcome in
// the failed set additionally invoke onBad. Jobs still running, and jobs
// whose outcome query errors, are left untouched.
//
// It returns all outcomes resolved this pass, keyed by handle; callers
// use non-emptiness as a completion signal.
func (r *Registry) Reconcile(
	ctx context.Context,
	client platform.Client,
	failed trawl.OutcomeSet,
	onBad BadOutcomeHook,
	logger *slog.Logger,
) map[platform.Handle]trawl.Outcome {
	if logger == nil {
		logger = slog.Default()
	}

	outcomes := make(map[platform.Handle]trawl.Outcome)
	for _, h := range r.Handles() {
		outcome, finished, err := client.Outcome(ctx, h)
		if err != nil {
			logger.Warn("outcome query failed, treating job as still running",
				slog.String("handle", h.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if !finished {
			continue
		}

		entry := r.entries[h]
		delete(r.entries, h)

		if failed.Contains(outcome) {
			logger.Warn("job finished with bad outcome",
				slog.String("handle", h.String()),
				slog.String("spider", entry.Spider),
				slog.String("outcome", string(outcome)),
			)
			if onBad != nil {
				onBad(ctx, entry.Spider, outcome, entry.Params.Clone(), h)
			}
		}
		outcomes[h] = outcome
	}

	logger.Info("reconciled running jobs",
		slog.Int("resolved", len(outcomes)),
		slog.Int("still_running", len(r.entries)),
	)
	return outcomes
}
