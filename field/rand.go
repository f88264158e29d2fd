package field

import (
	"crypto/rand"
	"encoding/binary"
	"log"
	mrand "math/rand"
)

type cryptoSource struct{}

func (s cryptoSource) Int63() int64 {
	var mask uint64 = 0x7fffffffffffffff
	return int64(s.Uint64() & mask)
}

func (cryptoSource) Uint64() uint64 {
	var buf [8]byte
	_, err := rand.Read(buf[:])
	if err != nil {
		log.Fatal("rand.Read failed")
	}

	return binary.LittleEndian.Uint64(buf[:])
}

func (cryptoSource) Seed(int64) {
	log.Fatal("Not implemented.")
}

// RandSource returns a math/rand source backed by crypto/rand. Use this
// for share splitting and preprocessing material.
func RandSource() *mrand.Rand {
	return mrand.New(cryptoSource{})
}

// Rand draws a uniform element of [0, 2^32).
func Rand(src *mrand.Rand) Elem {
	return Elem(src.Uint32())
}

// SmallRand draws uniformly from {1..5}. Only meant for keeping dealer
// output readable while debugging; never use it to randomise shares.
func SmallRand(src *mrand.Rand) Elem {
	return Elem(src.Intn(5) + 1)
}
