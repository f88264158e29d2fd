package mpc

import (
	"fmt"

	"mpcrec/dpf"
	"mpcrec/field"

	"github.com/fatih/color"
)

// ProcessQuery runs the full update protocol for one query against the
// shared vectors U and V, mutating this party's V shares in place. In
// reconstruction only the secretly selected slot j changes:
//
//	V[j] += u * (1 - <u, V[j]>)
//
// All multiplications are issued sequentially so that both parties hit
// the dealer's per-dimension FIFOs in the same order.
func (p *Party) ProcessQuery(U, V []field.Elem, userID uint32, key *dpf.Key) error {
	if key.Size != uint64(len(V)) {
		return fmt.Errorf("query domain %d does not match item count %d", key.Size, len(V))
	}

	uid, err := p.syncUserID(userID)
	if err != nil {
		return fmt.Errorf("user-id sync: %v", err)
	}
	ui := U[int(uid)%len(U)]

	indicatorXor := key.EvalFull()
	indicator, err := p.XorToAdditive(indicatorXor)
	if err != nil {
		return fmt.Errorf("share conversion: %v", err)
	}

	vj, err := p.DotProduct(V, indicator)
	if err != nil {
		return fmt.Errorf("item selection: %v", err)
	}
	dot, err := p.Multiply(ui, vj)
	if err != nil {
		return fmt.Errorf("user-item product: %v", err)
	}

	// delta reconstructs to 1 - <u, v_j>: P0 contributes the public 1.
	var delta field.Elem
	if p.Role == 0 {
		delta = field.Sub(1, dot)
	} else {
		delta = field.Sub(0, dot)
	}

	m, err := p.Multiply(ui, delta)
	if err != nil {
		return fmt.Errorf("update scalar: %v", err)
	}

	for i := range V {
		upd, err := p.Multiply(indicator[i], m)
		if err != nil {
			return fmt.Errorf("slot %d update: %v", i, err)
		}
		V[i] = field.Add(V[i], upd)
	}
	return nil
}

// syncUserID aligns the row of U both parties index. P0 sends its id and
// P1 echoes; on mismatch P0's id wins and a warning is emitted.
func (p *Party) syncUserID(mine uint32) (uint32, error) {
	if p.Role == 0 {
		if err := p.Peer.SendElem(field.Elem(mine)); err != nil {
			return 0, err
		}
		if err := p.Peer.Flush(); err != nil {
			return 0, err
		}
		peer, err := p.Peer.RecvElem()
		if err != nil {
			return 0, err
		}
		if uint32(peer) != mine {
			color.Yellow("Warning: user_id mismatch (P0=%d, P1=%d), using P0's", mine, uint32(peer))
		}
		return mine, nil
	}

	peer, err := p.Peer.RecvElem()
	if err != nil {
		return 0, err
	}
	if err := p.Peer.SendElem(field.Elem(mine)); err != nil {
		return 0, err
	}
	if err := p.Peer.Flush(); err != nil {
		return 0, err
	}
	if uint32(peer) != mine {
		color.Yellow("Warning: user_id mismatch (P1=%d, P0=%d), using P0's", mine, uint32(peer))
	}
	return uint32(peer), nil
}
