package dedup

import (
	"bytes"
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a probabilistic set of deduplication keys with bounded
// memory. Entries are append-only for the filter's lifetime.
//
// Error mode: Contains may return a false positive (a legitimately new
// job is skipped), never a false negative for keys actually added. That
// is the accepted tradeoff for bounded memory over unbounded job
// history. Exceeding capacity degrades the false-positive rate but never
// rejects inserts.
type Filter struct {
	capacity  int
	errorRate float64
	bits      *bloom.BloomFilter
}

// NewFilter creates a Filter sized for capacity elements at the given
// target false-positive rate. Size capacity generously relative to the
// expected lifetime job count.
func NewFilter(capacity int, errorRate float64) *Filter {
	return &Filter{
		capacity:  capacity,
		errorRate: errorRate,
		bits:      bloom.NewWithEstimates(uint(capacity), errorRate),
	}
}

// Add inserts the key. Adding an existing key is a no-op in effect.
func (f *Filter) Add(k Key) {
	f.bits.AddString(string(k))
}

// Contains reports whether the key was (probably) added before.
func (f *Filter) Contains(k Key) bool {
	return f.bits.TestString(string(k))
}

// Capacity returns the element count the filter was sized for.
func (f *Filter) Capacity() int { return f.capacity }

// ErrorRate returns the configured target false-positive rate.
func (f *Filter) ErrorRate() float64 { return f.errorRate }

// Snapshot serializes the filter bits for checkpointing.
func (f *Filter) Snapshot() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := f.bits.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("dedup: snapshot filter: %w", err)
	}
	return buf.Bytes(), nil
}

// Restore replaces the filter bits with a previous Snapshot. The
// capacity and error rate the snapshot was created with travel with the
// bits.
func (f *Filter) Restore(data []byte) error {
	restored := &bloom.BloomFilter{}
	if _, err := restored.ReadFrom(bytes.NewReader(data)); err != nil {
		return fmt.Errorf("dedup: restore filter: %w", err)
	}
	f.bits = restored
	return nil
}
