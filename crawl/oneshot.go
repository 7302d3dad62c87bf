package crawl

import (
	"context"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// OneShot schedules a single job with the configured spider and default
// parameters, then stops once any outcome resolves.
//
// The loop signals Done on the first resolved outcome even when other
// registry entries are still running. That matches the
// single-spider-per-manager usage this policy exists for; do not
// "fix" it.
//
// A failing outcome latches the manager's close reason. First failure
// wins; later ones do not overwrite it.
type OneShot struct{}

// NewOneShot creates the one-shot policy.
func NewOneShot() *OneShot { return &OneShot{} }

// Name returns "one-shot".
func (o *OneShot) Name() string { return "one-shot" }

func (o *OneShot) attach(_ *Manager) error { return nil }

// Tick reconciles and stops on any resolved outcome; otherwise it
// submits the single job if none is running.
func (o *OneShot) Tick(ctx context.Context, m *Manager) (Decision, error) {
	outcomes := m.Reconcile(ctx)
	if len(outcomes) > 0 {
		return Done, nil
	}
	if m.Registry().Len() == 0 {
		if _, err := m.scheduleSpider(ctx, "", nil); err != nil {
			return Continue, err
		}
	}
	return Continue, nil
}

// BadOutcome latches the failing outcome as the manager's close reason.
func (o *OneShot) BadOutcome(_ context.Context, m *Manager, _ string, outcome trawl.Outcome, _ trawl.JobParameters, _ platform.Handle) {
	m.setCloseReason(outcome)
}
