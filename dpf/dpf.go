// Package dpf implements a tree-based distributed point function over a
// power-of-two domain. A key pair compactly shares the indicator vector of
// one secret index: for every i, Eval(k0,i) XOR Eval(k1,i) equals the
// programmed value at the secret location and 0 everywhere else.
package dpf

import (
	"fmt"
	"math/rand"
)

// Key is one party's share of a point function. The correction words
// (CWSeed, CWTL, CWTR, CWOut) are identical in both keys of a pair; only
// the root seed and root control bit differ.
type Key struct {
	RootSeed Seed
	RootT    byte
	CWSeed   []Seed
	CWTL     []byte
	CWTR     []byte
	CWOut    uint64
	Size     uint64
	Depth    int
}

func isPowerOfTwo(x uint64) bool {
	return x != 0 && x&(x-1) == 0
}

func log2Size(n uint64) int {
	d := 0
	for uint64(1)<<d < n {
		d++
	}
	return d
}

// getBit extracts the level-th bit of index, MSB first (level 0 is the
// most significant of depth bits).
func getBit(index uint64, depth, level int) byte {
	return byte((index >> (depth - 1 - level)) & 1)
}

// Gen creates a key pair for the point function that is value at location
// and 0 on the rest of [0, size).
func Gen(size, location, value uint64, src *rand.Rand) (Key, Key, error) {
	if !isPowerOfTwo(size) {
		return Key{}, Key{}, fmt.Errorf("dpf: domain size %d is not a power of two", size)
	}
	if location >= size {
		return Key{}, Key{}, fmt.Errorf("dpf: location %d out of range [0,%d)", location, size)
	}
	depth := log2Size(size)

	var s0, s1 Seed
	src.Read(s0[:])
	src.Read(s1[:])
	t0 := s0[0] & 1
	t1 := t0 ^ 1

	cwSeed := make([]Seed, depth)
	cwTL := make([]byte, depth)
	cwTR := make([]byte, depth)

	cur0, cur1 := s0, s1
	tau0, tau1 := t0, t1

	for level := 0; level < depth; level++ {
		s0L, t0L, s0R, t0R := prgExpand(&cur0)
		s1L, t1L, s1R, t1R := prgExpand(&cur1)

		bit := getBit(location, depth, level)
		keep := bit

		cwTL[level] = t0L ^ t1L ^ bit ^ 1
		cwTR[level] = t0R ^ t1R ^ bit

		// The correction word is the XOR of the two seeds on the path
		// the evaluation must lose.
		var corr Seed
		if keep == 1 {
			xorSeeds(&corr, &s0L, &s1L)
		} else {
			xorSeeds(&corr, &s0R, &s1R)
		}
		cwSeed[level] = corr

		cwt := cwTL[level]
		if keep == 1 {
			cwt = cwTR[level]
		}

		child0, tchild0 := s0L, t0L
		child1, tchild1 := s1L, t1L
		if keep == 1 {
			child0, tchild0 = s0R, t0R
			child1, tchild1 = s1R, t1R
		}
		if tau0 == 0 {
			xorSeeds(&child0, &child0, &corr)
		}
		tau0 = tchild0 ^ (tau0 & cwt)
		cur0 = child0

		if tau1 == 0 {
			xorSeeds(&child1, &child1, &corr)
		}
		tau1 = tchild1 ^ (tau1 & cwt)
		cur1 = child1
	}

	cwOut := value ^ prgLeaf(&cur0) ^ prgLeaf(&cur1)

	k0 := Key{
		RootSeed: s0, RootT: t0,
		CWSeed: cwSeed, CWTL: cwTL, CWTR: cwTR,
		CWOut: cwOut, Size: size, Depth: depth,
	}
	k1 := Key{
		RootSeed: s1, RootT: t1,
		CWSeed: cwSeed, CWTL: cwTL, CWTR: cwTR,
		CWOut: cwOut, Size: size, Depth: depth,
	}
	return k0, k1, nil
}

// Eval returns this key's output share at index.
func (k *Key) Eval(index uint64) (uint64, error) {
	if index >= k.Size {
		return 0, fmt.Errorf("dpf: index %d out of range [0,%d)", index, k.Size)
	}
	return k.eval(index), nil
}

func (k *Key) eval(index uint64) uint64 {
	s := k.RootSeed
	t := k.RootT
	for level := 0; level < k.Depth; level++ {
		sL, tL, sR, tR := prgExpand(&s)

		child, tau, cwt := sL, tL, k.CWTL[level]
		if getBit(index, k.Depth, level) == 1 {
			child, tau, cwt = sR, tR, k.CWTR[level]
		}
		nextT := tau ^ (t & cwt)
		if t == 0 {
			xorSeeds(&child, &child, &k.CWSeed[level])
		}
		s = child
		t = nextT
	}
	y := prgLeaf(&s)
	if t == 1 {
		y ^= k.CWOut
	}
	return y
}

// EvalFull evaluates the key at every index of the domain.
func (k *Key) EvalFull() []uint64 {
	out := make([]uint64, k.Size)
	for i := uint64(0); i < k.Size; i++ {
		out[i] = k.eval(i)
	}
	return out
}
