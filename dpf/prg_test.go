package dpf

import (
	"bytes"
	"testing"

	"gotest.tools/assert"
)

func TestDomainSeparation(t *testing.T) {
	var seed Seed
	for i := range seed {
		seed[i] = byte(i * 7)
	}

	domains := []uint32{domainSL, domainSR, domainT, domainOut}
	streams := make([][]byte, len(domains))
	for i, d := range domains {
		streams[i] = make([]byte, 16)
		seed.keystream(d, streams[i])
	}
	for i := 0; i < len(streams); i++ {
		for j := i + 1; j < len(streams); j++ {
			assert.Check(t, !bytes.Equal(streams[i], streams[j]),
				"domains %#x and %#x produced the same keystream", domains[i], domains[j])
		}
	}
}

func TestExpandClearsControlBits(t *testing.T) {
	var seed Seed
	seed[0] = 0xFF
	sL, _, sR, _ := prgExpand(&seed)
	assert.Equal(t, sL[0]&0x3, byte(0))
	assert.Equal(t, sR[0]&0x3, byte(0))
}

func TestExpandIgnoresInputControlBits(t *testing.T) {
	var a, b Seed
	a[8] = 42
	b[8] = 42
	b[0] = 0x3 // differs only in the reserved bits

	aL, atL, aR, atR := prgExpand(&a)
	bL, btL, bR, btR := prgExpand(&b)
	assert.DeepEqual(t, aL, bL)
	assert.DeepEqual(t, aR, bR)
	assert.Equal(t, atL, btL)
	assert.Equal(t, atR, btR)
}

func TestLeafDeterministic(t *testing.T) {
	var seed Seed
	seed[5] = 99
	assert.Equal(t, prgLeaf(&seed), prgLeaf(&seed))

	var other Seed
	other[5] = 98
	assert.Check(t, prgLeaf(&seed) != prgLeaf(&other))
}
