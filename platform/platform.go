// Package platform defines the boundary with the hosted job-execution
// platform. The core scheduling engine consumes these interfaces; it never
// talks to the platform API directly.
//
// The platform executes spiders as remote jobs, persists job metadata, and
// reports a terminal outcome string for every finished job. Transport,
// authentication and request timeouts are implementation concerns of the
// concrete client, not of this package.
package platform

import (
	"context"

	"github.com/xraph/trawl"
)

// Handle is the opaque identifier the platform assigns to one scheduled
// job instance. Handles are unique per submission and never reused.
type Handle string

// String returns the handle's string form.
func (h Handle) String() string { return string(h) }

// SubmitRequest carries the fully resolved submission arguments for one
// job: spider arguments with defaults merged in, plus the reserved
// platform fields.
type SubmitRequest struct {
	// Args are the spider-facing arguments (reserved fields stripped,
	// values stringified).
	Args map[string]string

	// Tags are ordered string labels attached to the job.
	Tags []string

	// Units is the resource quota for the job. Zero means platform
	// default.
	Units int

	// Settings are platform job settings.
	Settings map[string]string

	// ProjectID is the platform project the job belongs to.
	ProjectID string
}

// JobInfo is the persisted metadata the platform reports for a job when a
// manager resumes. For finished jobs the Handle may be empty.
type JobInfo struct {
	Handle  Handle
	Spider  string
	Tags    []string
	Args    map[string]string
	Outcome trawl.Outcome
}

// Client is the minimal platform surface the scheduling core needs.
//
// Implementations must be safe for use from a single goroutine; the
// control loop calls them serially.
type Client interface {
	// Submit schedules one job for the given spider. A zero Handle with
	// a nil error means the platform declined the submission; the core
	// treats that as "nothing scheduled this attempt" and retries on a
	// later tick.
	Submit(ctx context.Context, spider string, req SubmitRequest) (Handle, error)

	// Outcome queries the terminal status of a job. finished is false
	// while the job is still running, in which case outcome is empty.
	Outcome(ctx context.Context, h Handle) (outcome trawl.Outcome, finished bool, err error)
}

// Unwrapper is implemented by client decorators that wrap another
// client, so capabilities of the underlying client stay discoverable.
type Unwrapper interface {
	Unwrap() Client
}

// FindResumer walks the decorator chain starting at c and returns the
// first client that implements Resumer.
func FindResumer(c Client) (Resumer, bool) {
	for c != nil {
		if r, ok := c.(Resumer); ok {
			return r, true
		}
		u, ok := c.(Unwrapper)
		if !ok {
			break
		}
		c = u.Unwrap()
	}
	return nil, false
}

// Resumer is implemented by clients that can report a manager's prior
// jobs from the platform's persisted metadata. The manager consults it
// once at startup.
type Resumer interface {
	// RunningJobs lists this flow's jobs that were still running when
	// the previous process stopped.
	RunningJobs(ctx context.Context) ([]JobInfo, error)

	// FinishedJobs lists this flow's jobs that already finished.
	FinishedJobs(ctx context.Context) ([]JobInfo, error)
}
