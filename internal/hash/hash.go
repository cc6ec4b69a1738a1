// Package hash computes payload identities.
//
// Fingerprint is a fast non-cryptographic xxHash64 used for deduplicating
// payloads while scanning. Digest is a BLAKE3-256 content digest that is
// stable across runs and safe to publish.
package hash

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
)

// Fingerprint computes the xxHash64 of data.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Digest computes the BLAKE3-256 digest of data.
func Digest(data []byte) [32]byte {
	return blake3.Sum256(data)
}

// DigestHex returns Digest as lowercase hex.
func DigestHex(data []byte) string {
	d := Digest(data)
	return hex.EncodeToString(d[:])
}
