package crawl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xraph/trawl"
	"github.com/xraph/trawl/dedup"
	"github.com/xraph/trawl/jobseq"
	"github.com/xraph/trawl/platform"
	"github.com/xraph/trawl/store"
)

// Generator streams parameter sets from a ParameterSource, keeping up
// to MaxRunningJobs in flight and at most MaxTotalJobs over the
// manager's lifetime. Parameter sets whose dedup key was seen before
// are silently discarded.
//
// Extra jobs injected with Add are drained before the source is pulled.
// Source exhaustion is a normal termination signal: the policy lets
// in-flight jobs finish and then signals Done.
type Generator struct {
	source   trawl.ParameterSource
	injected []trawl.JobParameters

	filter    *dedup.Filter
	nextSeq   uint64
	scheduled int
	exhausted bool
}

// NewGenerator creates the generator policy over the given source. A
// nil source behaves as an already-exhausted one, useful when all work
// arrives via Add.
func NewGenerator(source trawl.ParameterSource) *Generator {
	return &Generator{source: source, nextSeq: 1}
}

// Name returns "generator".
func (g *Generator) Name() string { return "generator" }

// attach sizes the membership filter from the manager's config.
func (g *Generator) attach(m *Manager) error {
	g.filter = dedup.NewFilter(m.cfg.MaxTotalJobs, m.cfg.FilterErrorRate)
	return nil
}

// Add injects one extra job ahead of the source. Injected jobs are
// scheduled in FIFO order and deduplicated like any other parameter
// set.
func (g *Generator) Add(spider string, params trawl.JobParameters) {
	g.injected = append(g.injected, params.WithSpider(spider))
}

// Filter exposes the membership filter, mainly for tests.
func (g *Generator) Filter() *dedup.Filter { return g.filter }

// NextSeq returns the next base sequence number to be minted.
func (g *Generator) NextSeq() uint64 { return g.nextSeq }

// Tick reconciles, then fills free running slots from the injected
// queue and the source.
func (g *Generator) Tick(ctx context.Context, m *Manager) (Decision, error) {
	m.Reconcile(ctx)

	for m.Registry().Len() < m.cfg.MaxRunningJobs {
		if g.scheduled >= m.cfg.MaxTotalJobs {
			m.logger.Warn("total job ceiling reached",
				slog.Int("max_total_jobs", m.cfg.MaxTotalJobs))
			return g.windDown(m), nil
		}

		params, ok := g.nextParams()
		if !ok {
			return g.windDown(m), nil
		}

		spider := params.Spider()
		if spider == "" {
			spider = m.cfg.Spider
		}
		if spider == "" {
			return Continue, fmt.Errorf("%w: parameter set %v names no spider and no default is configured",
				trawl.ErrNoSpider, params.SortedKeys())
		}

		key := dedup.ComputeKey(spider, m.resolveParams(params).SpiderArgs())
		if g.filter.Contains(key) {
			// Possibly a filter false positive; skipping a
			// legitimately new job is the documented tradeoff.
			m.logger.Debug("skipping already-scheduled parameter set",
				slog.String("spider", spider),
				slog.String("dedup_key", key.String()),
			)
			m.hooks.EmitJobSkipped(ctx, spider, params)
			continue
		}

		tags, minted := jobseq.Apply(params.Tags(), g.nextSeq)
		if minted {
			g.nextSeq++
		}
		params = params.WithTags(tags)

		h, err := m.scheduleSpider(ctx, spider, params)
		if err != nil {
			return Continue, err
		}
		if h == "" {
			// Declined: retry the same parameter set next tick,
			// ahead of everything else. Its sequence tag stays, so
			// the retry carries a bumped retry generation.
			g.pushFront(params)
			return Continue, nil
		}

		g.filter.Add(key)
		g.scheduled++
	}
	return Continue, nil
}

// BadOutcome ignores failures; the stream keeps going.
func (g *Generator) BadOutcome(context.Context, *Manager, string, trawl.Outcome, trawl.JobParameters, platform.Handle) {
}

// windDown decides between letting in-flight jobs finish and stopping.
func (g *Generator) windDown(m *Manager) Decision {
	if m.Registry().Len() > 0 {
		return Continue
	}
	return Done
}

// nextParams pops the injected queue first, then pulls the source.
func (g *Generator) nextParams() (trawl.JobParameters, bool) {
	if len(g.injected) > 0 {
		p := g.injected[0]
		g.injected = g.injected[1:]
		return p, true
	}
	if g.exhausted || g.source == nil {
		return nil, false
	}
	p, ok := g.source.Next()
	if !ok {
		g.exhausted = true
		return nil, false
	}
	return p.Clone(), true
}

func (g *Generator) pushFront(p trawl.JobParameters) {
	g.injected = append([]trawl.JobParameters{p}, g.injected...)
}

// resumeRunning recovers dedup and sequence state for a job that was
// still running when the previous process stopped.
func (g *Generator) resumeRunning(j platform.JobInfo) {
	g.filter.Add(dedup.ComputeKey(j.Spider, j.Args))
	g.advancePast(j.Tags)
}

// resumeFinished recovers dedup and sequence state for a job that
// already finished. Adding an existing key is a no-op, so this is
// idempotent.
func (g *Generator) resumeFinished(j platform.JobInfo) {
	key := dedup.ComputeKey(j.Spider, j.Args)
	if !g.filter.Contains(key) {
		g.filter.Add(key)
	}
	g.advancePast(j.Tags)
}

// advancePast moves the sequence counter beyond the job's JOBSEQ tag so
// fresh numbers never collide with historical ones.
func (g *Generator) advancePast(tags []string) {
	if seq, _, ok := jobseq.Parse(tags); ok && seq+1 > g.nextSeq {
		g.nextSeq = seq + 1
	}
}

// checkpoint snapshots the filter bits, sequence counter and in-flight
// handles.
func (g *Generator) checkpoint(m *Manager) (*store.Checkpoint, error) {
	bits, err := g.filter.Snapshot()
	if err != nil {
		return nil, err
	}
	handles := m.reg.Handles()
	running := make([]string, len(handles))
	for i, h := range handles {
		running[i] = h.String()
	}
	return &store.Checkpoint{
		NextSeq:        g.nextSeq,
		Filter:         bits,
		RunningHandles: running,
	}, nil
}

// restoreCheckpoint reloads a prior snapshot. The sequence counter only
// moves forward.
func (g *Generator) restoreCheckpoint(cp *store.Checkpoint) error {
	if len(cp.Filter) > 0 {
		if err := g.filter.Restore(cp.Filter); err != nil {
			return err
		}
	}
	if cp.NextSeq > g.nextSeq {
		g.nextSeq = cp.NextSeq
	}
	return nil
}

func (g *Generator) nextSequence() uint64 { return g.nextSeq }
