package generator

import (
	"fmt"
	"math/rand"

	"github.com/louisbranch/eventseed/internal/random"
)

// NewSeededRNG creates a seeded random number generator and reports the seed
// it used. If seed is 0, a fresh seed is drawn from crypto/rand so the run can
// be reproduced later with -seed.
func NewSeededRNG(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		fresh, err := random.NewSeed()
		if err != nil {
			return nil, 0, fmt.Errorf("new seed: %w", err)
		}
		seed = fresh
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
