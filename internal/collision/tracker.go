// Package collision deduplicates byte payloads by fingerprint while telling
// genuine duplicates apart from fingerprint collisions.
package collision

import "bytes"

// Tracker remembers every payload it has seen, bucketed by fingerprint.
// A payload is a duplicate only when an earlier payload has the same
// fingerprint and identical bytes; equal fingerprints over different bytes
// are counted as collisions and both payloads are kept.
type Tracker struct {
	seen       map[uint64][][]byte
	collisions int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[uint64][][]byte)}
}

// Track records data under fingerprint and reports whether identical bytes
// were tracked before. Tracker keeps a reference to data, not a copy.
func (t *Tracker) Track(fingerprint uint64, data []byte) bool {
	bucket := t.seen[fingerprint]
	for _, prev := range bucket {
		if bytes.Equal(prev, data) {
			return true
		}
	}

	if len(bucket) > 0 {
		t.collisions++
	}
	t.seen[fingerprint] = append(bucket, data)

	return false
}

// Collisions returns how many distinct payloads shared a fingerprint with an
// earlier one.
func (t *Tracker) Collisions() int {
	return t.collisions
}

// Len returns the number of distinct payloads tracked.
func (t *Tracker) Len() int {
	n := 0
	for _, bucket := range t.seen {
		n += len(bucket)
	}

	return n
}
