// Package beaver implements the helper party's correlated-randomness
// dealer. For every secure multiplication of dimension d the two compute
// parties each request one bundle; the dealer pairs their requests FIFO
// per dimension and hands each party its own view of the shared bundle.
package beaver

import (
	"math/rand"

	"mpcrec/field"
)

// Bundle is the dealer-internal correlated randomness for one secure
// multiplication: X0+X1 and Y0+Y1 are the masks, Alpha balances the two
// correction terms.
type Bundle struct {
	X0, X1, Y0, Y1 []field.Elem
	Alpha          field.Elem

	served [2]bool
}

// View is the part of a bundle one party receives: its mask shares plus
// the precomputed correction term.
type View struct {
	C field.Elem
	X []field.Elem
	Y []field.Elem
}

// NewBundle draws fresh randomness for one multiplication of dimension
// dim. With small set, values come from {1..5} to keep transcripts
// readable while debugging; production dealers sample uniformly.
func NewBundle(dim int, src *rand.Rand, small bool) *Bundle {
	draw := field.Rand
	if small {
		draw = field.SmallRand
	}
	b := &Bundle{
		X0:    make([]field.Elem, dim),
		X1:    make([]field.Elem, dim),
		Y0:    make([]field.Elem, dim),
		Y1:    make([]field.Elem, dim),
		Alpha: draw(src),
	}
	for i := 0; i < dim; i++ {
		b.X0[i] = draw(src)
		b.X1[i] = draw(src)
		b.Y0[i] = draw(src)
		b.Y1[i] = draw(src)
	}
	return b
}

// ViewFor computes the view of one compute party. The correction terms
// satisfy c0 + c1 = <X0,Y1> + <X1,Y0>.
func (b *Bundle) ViewFor(role int) View {
	var c field.Elem
	switch role {
	case 0:
		for i := range b.X0 {
			c = field.Add(c, field.Mul(b.X0[i], b.Y1[i]))
		}
		c = field.Add(c, b.Alpha)
		return View{C: c, X: b.X0, Y: b.Y0}
	case 1:
		for i := range b.X1 {
			c = field.Add(c, field.Mul(b.X1[i], b.Y0[i]))
		}
		c = field.Sub(c, b.Alpha)
		return View{C: c, X: b.X1, Y: b.Y1}
	}
	panic("beaver: role must be 0 or 1")
}
