// Package flag implements Konditional's per-flag definition and pure
// evaluator (spec §4.3): deterministic bucketing, precedence-ordered rule
// iteration, and the total, deterministic Decision it produces.
package flag

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/konditional-dev/konditional/criteria"
)

// fallbackBucket is returned for contexts whose stable id is unavailable
// or marked fallback; such contexts are effectively excluded from any
// ramp-up below 100% unless allowlisted (spec §4.3, Open Question 1).
const fallbackBucket = 9999

// bucketModulus is the size of the bucket space [0, 9999].
const bucketModulus = 10000

// Bucket computes the deterministic bucket for a context under a given
// salt and flag name, per spec §4.3:
//
//	msg    = salt || ":" || flagName || ":" || stableID.hex
//	digest = SHA-256(msg)
//	h64    = big-endian u64 of the first 8 bytes of the digest
//	bucket = h64 mod 10000
//
// SHA-256 is required verbatim here (not swapped for a faster hash): spec
// §8's subset-monotonicity, salt-reshuffle, and uniform-distribution
// properties are all defined in terms of this exact construction.
func Bucket(salt, flagName string, ctx criteria.Context) int {
	if ctx.StableIDFallback || ctx.StableID.IsZero() {
		return fallbackBucket
	}
	msg := salt + ":" + flagName + ":" + ctx.StableID.Hex()
	digest := sha256.Sum256([]byte(msg))
	h64 := binary.BigEndian.Uint64(digest[:8])
	return int(h64 % bucketModulus)
}
