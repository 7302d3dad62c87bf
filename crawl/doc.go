// Package crawl implements the crawl-manager control loop and its
// scheduling policies.
//
// A Manager owns the scheduling state for one logical workflow: the
// running-job registry, the close reason, and the policy deciding what
// to run next. Three policies exist:
//
//   - OneShot schedules a single job and stops once any outcome
//     resolves.
//   - Periodic reschedules the same job forever, one instance at a
//     time.
//   - Generator streams parameter sets from a ParameterSource,
//     deduplicating against a membership filter and keeping up to
//     MaxRunningJobs in flight.
//
// Each control-loop tick first reconciles the registry against the
// platform, then lets the policy decide whether and what to schedule.
// The loop runs on a cron schedule or descriptor ("@every 90s") and
// stops when the policy signals Done.
package crawl
