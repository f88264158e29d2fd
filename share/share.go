// Package share holds additive secret shares over Z/2^32 and their
// on-disk text representation. A secret x is stored as a pair (x0, x1)
// with x0 + x1 = x mod 2^32, one component per party.
package share

import (
	"math/rand"

	"mpcrec/field"
)

// Vector is one party's column of shares.
type Vector []field.Elem

// Split writes uniform shares of each secret into two fresh vectors.
func Split(secrets []field.Elem, src *rand.Rand) (Vector, Vector) {
	s0 := make(Vector, len(secrets))
	s1 := make(Vector, len(secrets))
	for i, secret := range secrets {
		s0[i] = field.Rand(src)
		s1[i] = field.Sub(secret, s0[i])
	}
	return s0, s1
}

// Reconstruct recombines two share vectors of equal length.
func Reconstruct(a, b Vector) []field.Elem {
	if len(a) != len(b) {
		panic("Tried to reconstruct share vectors of unequal length.")
	}
	out := make([]field.Elem, len(a))
	for i := range a {
		out[i] = field.Add(a[i], b[i])
	}
	return out
}
