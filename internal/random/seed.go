// Package random draws high-entropy seeds for the pseudo-random generators
// used by the seeder.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

var entropy io.Reader = crand.Reader

// maxSeedAttempts bounds rereads when the source keeps yielding zero.
const maxSeedAttempts = 8

// NewSeed returns a non-zero seed read from crypto/rand. Zero is reserved as
// the "pick one for me" value on the command line, so it is never returned.
func NewSeed() (int64, error) {
	var b [8]byte
	for attempt := 0; attempt < maxSeedAttempts; attempt++ {
		if _, err := io.ReadFull(entropy, b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
	return 0, fmt.Errorf("read random seed: source returned zero %d times", maxSeedAttempts)
}
