package dpf

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/binary"

	"github.com/lukechampine/fastxor"
)

// Domain-separation constants. Fixed values; changing them breaks key
// compatibility with previously generated query files.
const (
	domainSL  uint32 = 0xC0015E5A // left child seed
	domainSR  uint32 = 0xC0015255 // right child seed
	domainT   uint32 = 0xC0017455 // control bits
	domainOut uint32 = 0x0BADF00D // leaf output
)

// Seed is a 256-bit PRG seed, stored as the little-endian byte layout of
// eight 32-bit words. The low two bits of word 0 are reserved as control
// bits and cleared before every expansion.
type Seed [32]byte

func (s *Seed) word(i int) uint32 {
	return binary.LittleEndian.Uint32(s[4*i:])
}

func (s *Seed) setWord(i int, w uint32) {
	binary.LittleEndian.PutUint32(s[4*i:], w)
}

func (s *Seed) clearControlBits() {
	s[0] &^= 0x3
}

func xorSeeds(dst, a, b *Seed) {
	fastxor.Bytes(dst[:], a[:], b[:])
}

// keystream fills out with AES-128-CTR keystream. The cipher key is the
// first 16 seed bytes; the IV is words 4..6 (word 4 XORed with the domain
// constant) followed by a counter starting at 0.
func (s *Seed) keystream(domain uint32, out []byte) {
	block, err := aes.NewCipher(s[:16])
	if err != nil {
		panic("dpf: can't init AES")
	}
	var iv [16]byte
	binary.LittleEndian.PutUint32(iv[0:], s.word(4)^domain)
	binary.LittleEndian.PutUint32(iv[4:], s.word(5))
	binary.LittleEndian.PutUint32(iv[8:], s.word(6))
	cipher.NewCTR(block, iv[:]).XORKeyStream(out, out)
}

// prgExpand derives the two child seeds and control bits of a tree node.
func prgExpand(in *Seed) (sL Seed, tL byte, sR Seed, tR byte) {
	seed := *in
	seed.clearControlBits()
	seed.keystream(domainSL, sL[:])
	seed.keystream(domainSR, sR[:])
	var tw [8]byte
	seed.keystream(domainT, tw[:])
	tL = tw[0] & 1
	tR = tw[4] & 1
	sL.clearControlBits()
	sR.clearControlBits()
	return
}

// prgLeaf derives the 64-bit output payload of a leaf seed.
func prgLeaf(s *Seed) uint64 {
	var out [8]byte
	s.keystream(domainOut, out[:])
	return binary.LittleEndian.Uint64(out[:])
}
