// Package rng derives deterministic PRNG substreams from the GA driver's
// seed, so parallel repair never shares a *rand.Rand across goroutines.
package rng

import "math/rand"

// Substream derives one *rand.Rand for workerIndex from the driver's seed.
// The mixing constant is a large odd prime so adjacent worker indices land
// on well-separated seeds.
func Substream(seed int64, workerIndex int) *rand.Rand {
	return rand.New(rand.NewSource(seed*1_000_003 + int64(workerIndex)))
}
