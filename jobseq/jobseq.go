// Package jobseq assigns submission-sequence tags to scheduled jobs.
//
// A JOBSEQ tag encodes submission order and retry generation:
// "JOBSEQ=0000000012" for the twelfth job, "JOBSEQ=0000000012.r2" for its
// second retry. Sequence numbers are monotonically non-decreasing across
// the process lifetime and across restarts.
package jobseq

import (
	"fmt"
	"strconv"
	"strings"
)

// TagPrefix marks a sequence tag in a job's tag list.
const TagPrefix = "JOBSEQ="

// Format renders a sequence tag. The retry suffix is omitted when rep is
// zero.
func Format(seq uint64, rep int) string {
	if rep > 0 {
		return fmt.Sprintf("%s%010d.r%d", TagPrefix, seq, rep)
	}
	return fmt.Sprintf("%s%010d", TagPrefix, seq)
}

// Parse scans tags for a sequence tag and decodes it. A missing retry
// suffix decodes as rep 0. ok is false when no sequence tag is present,
// in which case seq and rep are zero.
func Parse(tags []string) (seq uint64, rep int, ok bool) {
	for _, tag := range tags {
		body, found := strings.CutPrefix(tag, TagPrefix)
		if !found {
			continue
		}
		seqPart, repPart, hasRep := strings.Cut(body, ".r")
		seq, err := strconv.ParseUint(seqPart, 10, 64)
		if err != nil {
			continue
		}
		rep := 0
		if hasRep {
			rep, err = strconv.Atoi(repPart)
			if err != nil {
				continue
			}
		}
		return seq, rep, true
	}
	return 0, 0, false
}

// Apply returns a copy of tags with a sequence tag applied. If no
// sequence tag exists, a fresh one is minted from next and minted is
// true: the caller must advance its counter. If one exists, it is
// replaced by the same base sequence with the retry generation bumped,
// and the counter must not advance.
//
// At most one sequence tag may exist per job; callers must not
// pre-populate more than one.
func Apply(tags []string, next uint64) (out []string, minted bool) {
	out = make([]string, 0, len(tags)+1)
	var existing string
	for _, tag := range tags {
		if existing == "" && strings.HasPrefix(tag, TagPrefix) {
			existing = tag
			continue
		}
		out = append(out, tag)
	}

	if existing == "" {
		return append(out, Format(next, 0)), true
	}

	seq, rep, ok := Parse([]string{existing})
	if !ok {
		// Malformed sequence tag: drop it and mint fresh.
		return append(out, Format(next, 0)), true
	}
	return append(out, Format(seq, rep+1)), false
}
