// Package random draws dice seeds from crypto/rand.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed returns a seed read from crypto/rand.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

// SeedOr returns *requested when set so replays stay deterministic,
// and a fresh seed otherwise.
func SeedOr(requested *int64) (int64, error) {
	if requested != nil {
		return *requested, nil
	}
	return NewSeed()
}

// NewRand returns a math/rand generator seeded by NewSeed.
func NewRand() (*rand.Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(seed)), nil
}
