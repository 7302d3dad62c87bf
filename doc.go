// Package trawl manages the lifecycle of recurring or parameterized spider
// crawl jobs on a hosted job-execution platform. It schedules jobs, tracks
// which are in flight, detects completion and failure, deduplicates repeated
// work, and decides when to reschedule.
//
// Trawl is designed as a library, not a service. Import it, point it at a
// platform client, pick a scheduling policy, and run the manager loop.
//
// # Quick Start
//
//	m, err := crawl.NewManager(client,
//	    crawl.WithConfig(cfg),
//	    crawl.WithPolicy(crawl.NewPeriodic()),
//	)
//	if err != nil { ... }
//	err = m.Run(ctx)
//
// # Architecture
//
// The root package defines the shared value types: JobParameters, Outcome,
// Config and ParameterSource. Subsystem packages sit underneath: platform
// (the collaborator interfaces for the remote job platform), dedup (job
// identity hashing plus a bounded-memory membership filter), jobseq
// (submission-sequence tagging), registry (the in-flight job registry and
// its reconciliation step), crawl (the manager loop and the three
// scheduling policies), hook (lifecycle extensions), audit (an extension
// recording lifecycle events), middleware (platform client decorators:
// logging, metrics, tracing, rate limiting, retries), backoff (retry delay
// strategies) and store (optional checkpoint persistence with memory,
// Redis and SQLite backends).
//
// The remote platform executes the jobs; this process polls it serially
// from a single control-loop goroutine. No internal locking is required:
// all mutable scheduling state is owned by that goroutine.
package trawl
