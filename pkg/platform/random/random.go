// Package random draws uniform values from crypto/rand.
package random

import (
	"crypto/rand"
	"math/big"
)

// Intn returns a cryptographically random int in [0, n). It panics if n <= 0.
func Intn(n int) int {
	if n <= 0 {
		panic("random: Intn called with non-positive n")
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand failure is unrecoverable
		panic("crypto/rand: " + err.Error())
	}
	return int(v.Int64())
}

// IntRange returns a random int in [lo, hi], both inclusive.
func IntRange(lo, hi int) int {
	return lo + Intn(hi-lo+1)
}

// Pick returns a uniformly chosen element of s. It panics on an empty slice.
func Pick[T any](s []T) T {
	return s[Intn(len(s))]
}
