// Package dedup recognizes parameter sets that have effectively already
// been scheduled. It pairs a deterministic job-identity digest with a
// bounded-memory probabilistic membership filter.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Key is the deduplication digest for one (spider, arguments) identity.
type Key string

// String returns the key's hex form.
func (k Key) String() string { return string(k) }

// ComputeKey derives the deduplication key for a job from its spider name
// and its resolved spider-facing arguments (defaults merged, reserved
// fields stripped, values stringified).
//
// The digest is invariant to argument insertion order: the mapping is
// serialized with keys in lexicographic order before hashing. Two calls
// with equal (spider, arguments) always yield the same key.
func ComputeKey(spider string, args map[string]string) Key {
	ident := make(map[string]string, len(args)+1)
	for k, v := range args {
		ident[k] = v
	}
	ident["spider"] = spider

	// encoding/json sorts map keys, which gives a canonical encoding.
	canonical, err := json.Marshal(ident)
	if err != nil {
		// A map[string]string cannot fail to marshal.
		panic("dedup: marshal identity: " + err.Error())
	}

	sum := sha256.Sum256(canonical)
	return Key(hex.EncodeToString(sum[:]))
}
