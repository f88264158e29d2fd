package driver

import (
	"fmt"
	"time"

	"mpcrec/mpc"
	"mpcrec/share"

	"github.com/fatih/color"
	"github.com/paulbellamy/ratecounter"
)

// Runner executes one compute party's query stream against its shares.
type Runner struct {
	Party   *mpc.Party
	Config  Config
	U, V    share.Vector
	Queries []Query

	// Progress prints a line per processed query with a queries/sec
	// rate.
	Progress bool
}

// Run processes all queries in file order, mutating r.V in place. On
// error the in-memory V is not to be persisted; the caller exits
// instead.
func (r *Runner) Run() error {
	if len(r.U) != r.Config.NumUsers || len(r.V) != r.Config.NumItems {
		return fmt.Errorf("Share vectors (%d users, %d items) do not match config (%d users, %d items)",
			len(r.U), len(r.V), r.Config.NumUsers, r.Config.NumItems)
	}

	counter := ratecounter.NewRateCounter(1 * time.Second)
	start := time.Now()
	last := r.Party.Peer.Stats
	for i := range r.Queries {
		q := &r.Queries[i]
		if err := r.Party.ProcessQuery(r.U, r.V, q.UserID, &q.Key); err != nil {
			return fmt.Errorf("query %d: %v", i, err)
		}
		counter.Incr(1)
		if r.Progress {
			delta := r.Party.Peer.Stats.Sub(last)
			last = r.Party.Peer.Stats
			fmt.Printf("P%d: processed query %d/%d (%d queries/sec, %d bytes to peer)\n",
				r.Party.Role, i+1, len(r.Queries), counter.Rate(), delta.Sent)
		}
	}

	if r.Progress {
		elapsed := time.Since(start)
		color.Green("P%d: completed %d queries in %s, sent %d bytes to peer, received %d",
			r.Party.Role, len(r.Queries), elapsed,
			r.Party.Peer.Stats.Sent, r.Party.Peer.Stats.Received)
	}
	return nil
}
