package mpc

import (
	"mpcrec/field"
	"mpcrec/share"
)

// DotProduct returns this party's additive share of <a, b>, where a and
// b are the secrets underlying the parties' share vectors. One bundle
// request and one symmetric peer exchange.
func (p *Party) DotProduct(a, b share.Vector) (field.Elem, error) {
	if len(a) != len(b) {
		panic("Tried to dot-product share vectors of unequal length.")
	}
	k := len(a)

	view, err := p.RequestBundle(k)
	if err != nil {
		return 0, err
	}

	// Send masked a then masked b, receive the peer's in the same
	// layout. Full duplex, so neither party stalls on backpressure.
	masked := make([]field.Elem, 2*k)
	for i := 0; i < k; i++ {
		masked[i] = field.Add(a[i], view.X[i])
		masked[k+i] = field.Add(b[i], view.Y[i])
	}
	peer := make([]field.Elem, 2*k)
	if err := p.Peer.Exchange(masked, peer); err != nil {
		return 0, err
	}
	peerA, peerB := peer[:k], peer[k:]

	var s field.Elem
	for i := 0; i < k; i++ {
		s = field.Add(s, field.Mul(a[i], field.Add(b[i], peerB[i])))
	}
	for i := 0; i < k; i++ {
		s = field.Sub(s, field.Mul(view.Y[i], peerA[i]))
	}
	return field.Add(s, view.C), nil
}

// Multiply is the one-dimensional special case of DotProduct.
func (p *Party) Multiply(x, y field.Elem) (field.Elem, error) {
	return p.DotProduct(share.Vector{x}, share.Vector{y})
}
