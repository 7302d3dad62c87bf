// Package memory implements an in-memory fake of the job platform.
// Intended for unit testing and development: tests submit jobs through
// the normal client surface and drive completion with Finish.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// Compile-time interface checks.
var (
	_ platform.Client  = (*Platform)(nil)
	_ platform.Resumer = (*Platform)(nil)
)

// RemoteJob is one submitted job as the fake platform records it.
type RemoteJob struct {
	Handle  platform.Handle
	Spider  string
	Request platform.SubmitRequest

	// Outcome is set once the job is finished via Finish.
	Outcome  trawl.Outcome
	Finished bool
}

// Platform is a fully in-memory platform fake. Safe for concurrent
// access.
type Platform struct {
	mu sync.Mutex

	jobs  map[platform.Handle]*RemoteJob
	order []platform.Handle

	// declineNext makes the next n Submit calls return a zero handle.
	declineNext int

	// seeded resume metadata, reported by RunningJobs/FinishedJobs.
	resumeRunning  []platform.JobInfo
	resumeFinished []platform.JobInfo
}

// New returns a new empty Platform.
func New() *Platform {
	return &Platform{jobs: make(map[platform.Handle]*RemoteJob)}
}

// Submit records the job and mints a fresh handle for it.
func (p *Platform) Submit(_ context.Context, spider string, req platform.SubmitRequest) (platform.Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.declineNext > 0 {
		p.declineNext--
		return "", nil
	}

	h := platform.Handle(uuid.NewString())
	p.jobs[h] = &RemoteJob{Handle: h, Spider: spider, Request: req}
	p.order = append(p.order, h)
	return h, nil
}

// Outcome reports the job's terminal status, or finished=false while the
// job is still running. Unknown handles count as still running.
func (p *Platform) Outcome(_ context.Context, h platform.Handle) (trawl.Outcome, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	j, ok := p.jobs[h]
	if !ok || !j.Finished {
		return "", false, nil
	}
	return j.Outcome, true, nil
}

// RunningJobs reports the seeded resume metadata for running jobs.
func (p *Platform) RunningJobs(_ context.Context) ([]platform.JobInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]platform.JobInfo(nil), p.resumeRunning...), nil
}

// FinishedJobs reports the seeded resume metadata for finished jobs.
func (p *Platform) FinishedJobs(_ context.Context) ([]platform.JobInfo, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]platform.JobInfo(nil), p.resumeFinished...), nil
}

// ──────────────────────────────────────────────────
// Test controls
// ──────────────────────────────────────────────────

// Finish marks the job as finished with the given outcome.
func (p *Platform) Finish(h platform.Handle, outcome trawl.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if j, ok := p.jobs[h]; ok {
		j.Outcome = outcome
		j.Finished = true
	}
}

// FinishAll marks every running job as finished with the given outcome.
func (p *Platform) FinishAll(outcome trawl.Outcome) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, j := range p.jobs {
		if !j.Finished {
			j.Outcome = outcome
			j.Finished = true
		}
	}
}

// DeclineNext makes the next n Submit calls return a zero handle,
// simulating the platform refusing submissions.
func (p *Platform) DeclineNext(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.declineNext = n
}

// SeedResume seeds the metadata reported to a resuming manager.
func (p *Platform) SeedResume(running, finished []platform.JobInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resumeRunning = append([]platform.JobInfo(nil), running...)
	p.resumeFinished = append([]platform.JobInfo(nil), finished...)
}

// Submitted returns the recorded jobs in submission order.
func (p *Platform) Submitted() []RemoteJob {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]RemoteJob, 0, len(p.order))
	for _, h := range p.order {
		out = append(out, *p.jobs[h])
	}
	return out
}

// SubmissionCount returns how many jobs have been accepted.
func (p *Platform) SubmissionCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}

// RunningCount returns how many accepted jobs have not finished yet.
func (p *Platform) RunningCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, j := range p.jobs {
		if !j.Finished {
			n++
		}
	}
	return n
}
