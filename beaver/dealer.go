package beaver

import (
	"fmt"
	"math/rand"

	"mpcrec/wire"

	"github.com/elliotchance/orderedmap"
)

type request struct {
	role int
	dim  int
	resp chan View
}

// dimQueue is the pending-bundle FIFO for one dimension.
type dimQueue struct {
	bundles []*Bundle
	served  uint64
}

// Dealer owns the per-dimension pairing queues. All queue state is
// confined to the Run goroutine; connection handlers talk to it over the
// request channel.
type Dealer struct {
	src   *rand.Rand
	small bool

	requests chan request
	done     chan struct{}

	// Owned by Run.
	pending *orderedmap.OrderedMap
}

// NewDealer creates a dealer drawing randomness from src.
func NewDealer(src *rand.Rand, small bool) *Dealer {
	return &Dealer{
		src:      src,
		small:    small,
		requests: make(chan request),
		done:     make(chan struct{}),
		pending:  orderedmap.NewOrderedMap(),
	}
}

// Run processes bundle requests until Stop. It is the only goroutine
// touching the queues, so pairing needs no locking.
func (d *Dealer) Run() {
	for {
		select {
		case req := <-d.requests:
			req.resp <- d.serve(req.role, req.dim)
		case <-d.done:
			return
		}
	}
}

// Stop terminates Run.
func (d *Dealer) Stop() {
	close(d.done)
}

func (d *Dealer) queue(dim int) *dimQueue {
	if q, ok := d.pending.Get(dim); ok {
		return q.(*dimQueue)
	}
	q := &dimQueue{}
	d.pending.Set(dim, q)
	return q
}

// serve pairs this request with the queue head if the head is still
// waiting for this party, and creates a fresh bundle otherwise. A bundle
// leaves the queue once both parties have seen it.
func (d *Dealer) serve(role, dim int) View {
	q := d.queue(dim)

	var b *Bundle
	if len(q.bundles) > 0 && q.bundles[0].served[1-role] && !q.bundles[0].served[role] {
		b = q.bundles[0]
	} else {
		b = NewBundle(dim, d.src, d.small)
		q.bundles = append(q.bundles, b)
	}
	b.served[role] = true

	if b.served[0] && b.served[1] && len(q.bundles) > 0 && q.bundles[0] == b {
		q.bundles = q.bundles[1:]
		q.served++
	}
	return b.ViewFor(role)
}

// Serve requests one bundle view on behalf of a connection handler.
func (d *Dealer) Serve(role, dim int) View {
	resp := make(chan View)
	d.requests <- request{role: role, dim: dim, resp: resp}
	return <-resp
}

// ReadRole consumes the handshake element identifying the connecting
// party.
func ReadRole(conn *wire.Conn) (int, error) {
	roleElem, err := conn.RecvElem()
	if err != nil {
		return -1, fmt.Errorf("reading role handshake: %v", err)
	}
	if roleElem > 1 {
		return -1, fmt.Errorf("bad role %d in handshake", roleElem)
	}
	return int(roleElem), nil
}

// ServeConn serves bundle requests from one compute party until the
// connection closes.
func (d *Dealer) ServeConn(conn *wire.Conn, role int) error {
	for {
		dimElem, err := conn.RecvElem()
		if err != nil {
			// EOF here is the normal shutdown path.
			return nil
		}
		if dimElem == 0 {
			return fmt.Errorf("P%d requested bundle of dimension 0", role)
		}
		view := d.Serve(role, int(dimElem))

		if err := conn.SendElem(view.C); err != nil {
			return err
		}
		if err := conn.SendVec(view.X); err != nil {
			return err
		}
		if err := conn.SendVec(view.Y); err != nil {
			return err
		}
		if err := conn.Flush(); err != nil {
			return err
		}
	}
}

// DimStats is the served-bundle count for one dimension.
type DimStats struct {
	Dim    int
	Served uint64
}

// Stats reports fully served bundles per dimension, in first-request
// order. Call only after Run has stopped.
func (d *Dealer) Stats() []DimStats {
	var stats []DimStats
	for e := d.pending.Front(); e != nil; e = e.Next() {
		q := e.Value.(*dimQueue)
		stats = append(stats, DimStats{Dim: e.Key.(int), Served: q.served})
	}
	return stats
}
