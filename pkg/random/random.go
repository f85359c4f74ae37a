// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

// Package random provides the injectable randomness source used by the
// roll engine, the double-down coin, and the reward allocator. Tests
// substitute deterministic sequences; production uses a PRNG seeded from
// crypto/rand.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// Source is the subset of math/rand.Rand the arbiter draws from.
type Source interface {
	// Float64 returns a uniform real in [0,1).
	Float64() float64
	// Intn returns a uniform int in [0,n).
	Intn(n int) int
}

// New returns a PRNG seeded from crypto/rand. If the system entropy read
// fails it falls back to the zero seed rather than failing startup; the
// arbiter has no cryptographic requirement on its draws.
func New() *rand.Rand {
	var b [8]byte
	seed := int64(0)
	if _, err := crand.Read(b[:]); err != nil {
		logrus.Warnf("failed to read random seed, falling back to zero seed: %v", err)
	} else {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return rand.New(rand.NewSource(seed))
}
