package booster

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"time"
)

// NewSeededRNG returns a deterministic RNG for tests and for any caller
// that wants reproducible generation (spec §8: "generate(same seed, same
// inputs) is reproducible").
func NewSeededRNG(seed int64) *mrand.Rand {
	return mrand.New(mrand.NewSource(seed))
}

// NewCryptoRNG returns a non-deterministic RNG seeded from crypto/rand,
// used in production where reproducibility is not wanted.
func NewCryptoRNG() *mrand.Rand {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing is a Fatal-class condition upstream; here we
		// fall back to a time-derived seed rather than leaving the RNG
		// unseeded. Callers in the hot path should treat a Read failure as
		// worth logging.
		return mrand.New(mrand.NewSource(time.Now().UnixNano()))
	}
	seed := int64(binary.BigEndian.Uint64(buf[:]))
	return mrand.New(mrand.NewSource(seed))
}
