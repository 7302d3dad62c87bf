package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/platform"
)

// resume recovers scheduling state at startup: first from the
// checkpoint store, then from the platform's persisted job metadata.
// After resume, neither already-finished nor already-running parameter
// sets are resubmitted, and fresh sequence numbers never collide with
// historical ones.
func (m *Manager) resume(ctx context.Context) error {
	if m.ckpt != nil {
		if cper, ok := m.policy.(checkpointer); ok {
			cp, err := m.ckpt.LoadCheckpoint(ctx, m.flowID)
			switch {
			case errors.Is(err, trawl.ErrCheckpointNotFound):
				// First run of this flow.
			case err != nil:
				return fmt.Errorf("trawl: load checkpoint: %w", err)
			default:
				if err := cper.restoreCheckpoint(cp); err != nil {
					return fmt.Errorf("trawl: restore checkpoint: %w", err)
				}
				m.logger.Info("checkpoint restored",
					slog.String("flow_id", m.flowID),
					slog.Uint64("next_seq", cp.NextSeq),
				)
			}
		}
	}

	resumer, ok := platform.FindResumer(m.client)
	if !ok {
		return nil
	}

	running, err := resumer.RunningJobs(ctx)
	if err != nil {
		return fmt.Errorf("trawl: list running jobs: %w", err)
	}
	for _, j := range running {
		params := paramsFromJobInfo(j)
		m.reg.Add(j.Handle, j.Spider, params)
		if rh, ok := m.policy.(resumeHooks); ok {
			rh.resumeRunning(j)
		}
		m.logger.Info("resumed running job",
			slog.String("handle", j.Handle.String()),
			slog.String("spider", j.Spider),
		)
	}

	finished, err := resumer.FinishedJobs(ctx)
	if err != nil {
		return fmt.Errorf("trawl: list finished jobs: %w", err)
	}
	for _, j := range finished {
		if rh, ok := m.policy.(resumeHooks); ok {
			rh.resumeFinished(j)
		}
	}

	var nextSeq uint64
	if cper, ok := m.policy.(checkpointer); ok {
		nextSeq = cper.nextSequence()
	}
	m.hooks.EmitManagerResumed(ctx, m.reg.Len(), nextSeq)
	if len(running) > 0 || len(finished) > 0 {
		m.logger.Info("resume complete",
			slog.Int("running", len(running)),
			slog.Int("finished", len(finished)),
			slog.Uint64("next_seq", nextSeq),
		)
	}
	return nil
}

// paramsFromJobInfo rebuilds a parameter override from the platform's
// persisted metadata: prior arguments plus the job's tags.
func paramsFromJobInfo(j platform.JobInfo) trawl.JobParameters {
	params := make(trawl.JobParameters, len(j.Args)+1)
	for k, v := range j.Args {
		params[k] = v
	}
	params[trawl.KeyTags] = append([]string(nil), j.Tags...)
	return params
}
