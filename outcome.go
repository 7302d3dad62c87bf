package trawl

// Outcome is the terminal status string the platform reports for a
// finished job. Outcomes are partitioned into a fixed failed subset;
// everything else counts as successful.
type Outcome string

// Well-known outcomes reported by the platform.
const (
	OutcomeFinished          Outcome = "finished"
	OutcomeFailed            Outcome = "failed"
	OutcomeKilledByOOM       Outcome = "killed by oom"
	OutcomeCancelled         Outcome = "cancelled"
	OutcomeCancelTimeout     Outcome = "cancel_timeout"
	OutcomeMemusageExceeded  Outcome = "memusage_exceeded"
	OutcomeDiskusageExceeded Outcome = "diskusage_exceeded"
	OutcomeCancelledStalled  Outcome = "cancelled (stalled)"
)

// OutcomeSet is a set of outcome strings.
type OutcomeSet map[Outcome]struct{}

// NewOutcomeSet builds an OutcomeSet from the given outcomes.
func NewOutcomeSet(outcomes ...Outcome) OutcomeSet {
	s := make(OutcomeSet, len(outcomes))
	for _, o := range outcomes {
		s[o] = struct{}{}
	}
	return s
}

// Contains reports whether o is in the set.
func (s OutcomeSet) Contains(o Outcome) bool {
	_, ok := s[o]
	return ok
}

// DefaultFailedOutcomes returns the outcomes treated as failures unless
// overridden in Config.
func DefaultFailedOutcomes() OutcomeSet {
	return NewOutcomeSet(
		OutcomeFailed,
		OutcomeKilledByOOM,
		OutcomeCancelled,
		OutcomeCancelTimeout,
		OutcomeMemusageExceeded,
		OutcomeDiskusageExceeded,
		OutcomeCancelledStalled,
	)
}
