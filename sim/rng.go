package sim

import (
	"math/rand"
)

// SimulationKey uniquely identifies a reproducible simulation run.
// Two engines with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results for the same call sequence.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// newBitSource returns the single pseudorandom source seeded by key.
// All noise channels draw from it; there is deliberately no per-channel
// partitioning, so the interleaving of draws is observable.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
func newBitSource(key SimulationKey) *rand.Rand {
	return rand.New(rand.NewSource(int64(key)))
}
