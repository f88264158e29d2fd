// Package mpc implements the compute-party side of the protocol: bundle
// requests to the helper, masked-share exchange with the peer, secure
// dot products, the XOR-to-additive conversion and the per-query update
// state machine.
package mpc

import (
	"fmt"

	"mpcrec/beaver"
	"mpcrec/field"
	"mpcrec/wire"
)

// Party is one compute party's protocol session. Role is 0 or 1; Peer
// connects the two compute parties; Dealer connects to the helper.
type Party struct {
	Role   int
	Peer   *wire.Conn
	Dealer *wire.Conn
}

// Handshake announces the party's role on the dealer connection. Must be
// the first traffic sent to the dealer.
func (p *Party) Handshake() error {
	if err := p.Dealer.SendElem(field.Elem(p.Role)); err != nil {
		return err
	}
	return p.Dealer.Flush()
}

// RequestBundle fetches one preprocessing bundle view of the given
// dimension. Strictly request-response: the dealer's per-dimension FIFO
// pairing relies on both parties issuing requests in the same order.
func (p *Party) RequestBundle(dim int) (beaver.View, error) {
	if err := p.Dealer.SendElem(field.Elem(dim)); err != nil {
		return beaver.View{}, err
	}
	if err := p.Dealer.Flush(); err != nil {
		return beaver.View{}, err
	}

	view := beaver.View{
		X: make([]field.Elem, dim),
		Y: make([]field.Elem, dim),
	}
	var err error
	if view.C, err = p.Dealer.RecvElem(); err != nil {
		return beaver.View{}, fmt.Errorf("reading bundle correction: %v", err)
	}
	if err := p.Dealer.RecvVec(view.X); err != nil {
		return beaver.View{}, fmt.Errorf("reading bundle X: %v", err)
	}
	if err := p.Dealer.RecvVec(view.Y); err != nil {
		return beaver.View{}, fmt.Errorf("reading bundle Y: %v", err)
	}
	return view, nil
}
