package mpc

import (
	"mpcrec/field"
	"mpcrec/share"
)

// XorToAdditive lifts a boolean-shared vector into additive shares over
// the ring. The parties exchange only their signed local sums, which
// reveals the indicator's total weight; in this protocol that weight is
// always 1 (a one-hot DPF output), so nothing secret leaks. Any use with
// a non-public population count needs the bitwise B2A gadget instead.
func (p *Party) XorToAdditive(xs []uint64) (share.Vector, error) {
	temp := make([]int64, len(xs))
	var local int64
	for i, v := range xs {
		t := int64(v)
		if p.Role == 1 {
			t = -t
		}
		temp[i] = t
		local += t
	}

	var peer int64
	if p.Role == 0 {
		if err := p.Peer.SendElem(uint64(local)); err != nil {
			return nil, err
		}
		if err := p.Peer.Flush(); err != nil {
			return nil, err
		}
		v, err := p.Peer.RecvElem()
		if err != nil {
			return nil, err
		}
		peer = int64(v)
	} else {
		v, err := p.Peer.RecvElem()
		if err != nil {
			return nil, err
		}
		peer = int64(v)
		if err := p.Peer.SendElem(uint64(local)); err != nil {
			return nil, err
		}
		if err := p.Peer.Flush(); err != nil {
			return nil, err
		}
	}

	// The non-hot entries cancel between the parties, so the total is
	// exactly +1 or -1; flip both sides to make it +1.
	if local+peer < 0 {
		for i := range temp {
			temp[i] = -temp[i]
		}
	}

	out := make(share.Vector, len(temp))
	for i, v := range temp {
		out[i] = field.FromSigned(v)
	}
	return out, nil
}
