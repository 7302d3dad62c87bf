package crawl

import (
	"context"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// Periodic reschedules the configured spider with the same parameters
// forever, waiting for the previous job to finish before submitting the
// next one. It never signals Done; stop it by cancelling the context.
//
// Failures do not halt the cycle and do not set a close reason.
type Periodic struct{}

// NewPeriodic creates the periodic policy.
func NewPeriodic() *Periodic { return &Periodic{} }

// Name returns "periodic".
func (p *Periodic) Name() string { return "periodic" }

func (p *Periodic) attach(_ *Manager) error { return nil }

// Tick reconciles and resubmits once the registry is empty.
func (p *Periodic) Tick(ctx context.Context, m *Manager) (Decision, error) {
	m.Reconcile(ctx)
	if m.Registry().Len() == 0 {
		if _, err := m.scheduleSpider(ctx, "", nil); err != nil {
			return Continue, err
		}
	}
	return Continue, nil
}

// BadOutcome ignores failures; reconciliation already logged them.
func (p *Periodic) BadOutcome(context.Context, *Manager, string, trawl.Outcome, trawl.JobParameters, platform.Handle) {
}
