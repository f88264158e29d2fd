// Package field implements arithmetic over the ring Z/2^32. Elements are
// carried in uint64 values; only the low 32 bits are semantic.
package field

// Elem is a ring element. Operations normalise results mod 2^32.
type Elem = uint64

// Modulus is the ring size, 2^32.
const Modulus uint64 = 1 << 32

func Add(a, b Elem) Elem {
	return (a + b) % Modulus
}

func Sub(a, b Elem) Elem {
	return (a + Modulus - b%Modulus) % Modulus
}

func Mul(a, b Elem) Elem {
	return (a * b) % Modulus
}

// FromSigned maps a signed value into the ring (two's complement of the
// low 32 bits).
func FromSigned(x int64) Elem {
	return uint64(x) % Modulus
}

// ToSigned reads the low 32 bits of v as a two's-complement int32.
func ToSigned(v Elem) int64 {
	return int64(int32(uint32(v)))
}
