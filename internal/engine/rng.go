package engine

import (
	"math/rand"
	"time"
)

// RNG is the randomness source used for tie-breaking and corruption
// rolls. Gameplay randomness is a fairness mechanism, not a security
// boundary, so math/rand is fine; the interface exists so tests can
// inject a fixed seed.
type RNG interface {
	Intn(n int) int
}

// NewRNG returns a seeded source. Seed zero picks a time-based seed.
func NewRNG(seed int64) RNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
