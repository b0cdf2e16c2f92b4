// Package random provides seed generation for dice sources.
//
// Seeds come from crypto/rand so independent evaluations never share a
// generator; the generator itself is math/rand, seeded per evaluation, which
// keeps rolls reproducible when a caller supplies the seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// RngAlgoMathRandV1 names the generator behind every seeded source.
const RngAlgoMathRandV1 = "math_rand_v1"

// Seed sources reported alongside a roll.
const (
	// SeedSourceClient means the caller supplied the seed.
	SeedSourceClient = "CLIENT"
	// SeedSourceServer means the seed was generated for the call.
	SeedSourceServer = "SERVER"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns the requested seed when present, otherwise a fresh one
// from seedFunc. The second value reports where the seed came from.
func ResolveSeed(requested *int64, seedFunc func() (int64, error)) (int64, string, error) {
	if requested != nil {
		return *requested, SeedSourceClient, nil
	}
	if seedFunc == nil {
		seedFunc = NewSeed
	}
	seed, err := seedFunc()
	if err != nil {
		return 0, "", err
	}
	return seed, SeedSourceServer, nil
}

// NewRand returns a generator seeded with seed. Each call owns its generator.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
