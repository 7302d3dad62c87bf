package crawl

import (
	"context"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
	"github.com/xraph/trawl/store"
)

// Decision is what a policy tick tells the control loop to do next.
type Decision int

const (
	// Continue keeps the control loop running.
	Continue Decision = iota
	// Done stops the control loop. Terminal.
	Done
)

// String returns the decision name.
func (d Decision) String() string {
	if d == Done {
		return "done"
	}
	return "continue"
}

// Policy decides what a manager runs next. The three implementations
// (OneShot, Periodic and Generator) share the manager's registry and
// reconciliation step and differ in their tick and bad-outcome
// behavior.
//
// The interface is sealed: policies live in this package because ticks
// drive unexported manager operations.
type Policy interface {
	// Name identifies the policy in logs.
	Name() string

	// Tick runs one control-loop round: reconcile, then decide
	// whether and what to schedule. An error returned from Tick is
	// fatal to the loop; transient platform trouble is handled inside
	// the tick.
	Tick(ctx context.Context, m *Manager) (Decision, error)

	// BadOutcome is invoked by reconciliation for every job finishing
	// with an outcome in the failed set.
	BadOutcome(ctx context.Context, m *Manager, spider string, outcome trawl.Outcome, params trawl.JobParameters, h platform.Handle)

	// attach binds the policy to its manager at construction time.
	attach(m *Manager) error
}

// resumeHooks is implemented by policies that track per-job state
// across restarts.
type resumeHooks interface {
	// resumeRunning is called once per job the platform reports as
	// still running from a previous process.
	resumeRunning(job platform.JobInfo)

	// resumeFinished is called once per job the platform reports as
	// already finished.
	resumeFinished(job platform.JobInfo)
}

// checkpointer is implemented by policies with state worth snapshotting
// to a checkpoint store.
type checkpointer interface {
	checkpoint(m *Manager) (*store.Checkpoint, error)
	restoreCheckpoint(cp *store.Checkpoint) error
	nextSequence() uint64
}
