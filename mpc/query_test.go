package mpc

import (
	"testing"

	"mpcrec/dpf"
	"mpcrec/field"
	"mpcrec/share"

	"gotest.tools/assert"
)

// runQuery executes one query on both parties concurrently and returns
// the reconstructed V.
func runQuery(t *testing.T, p0, p1 *Party, U0, U1, V0, V1 share.Vector,
	userID uint32, k0, k1 *dpf.Key) []field.Elem {
	t.Helper()

	errs := make(chan error, 1)
	go func() {
		errs <- p0.ProcessQuery(U0, V0, userID, k0)
	}()
	assert.NilError(t, p1.ProcessQuery(U1, V1, userID, k1))
	assert.NilError(t, <-errs)

	return share.Reconstruct(V0, V1)
}

func TestSingleQueryUpdatesSelectedSlot(t *testing.T) {
	src := testSource()
	p0, p1, stop := testParties(t, false)
	defer stop()

	U := []field.Elem{1, 2}
	V := []field.Elem{10, 20, 30, 40}
	U0, U1 := share.Split(U, src)
	V0, V1 := share.Split(V, src)

	const userID, item = 0, 1
	k0, k1, err := dpf.Gen(uint64(len(V)), item, 1, src)
	assert.NilError(t, err)

	got := runQuery(t, p0, p1, U0, U1, V0, V1, userID, &k0, &k1)

	// V[1] += U[0] * (1 - U[0]*V[1]); other slots unchanged.
	u := U[userID]
	want := field.Add(V[item], field.Mul(u, field.Sub(1, field.Mul(u, V[item]))))
	assert.Equal(t, got[item], want)
	for i := range V {
		if i != item {
			assert.Equal(t, got[i], V[i], "slot %d must not change", i)
		}
	}
}

func TestQueryWithSmallDealerRandomness(t *testing.T) {
	src := testSource()
	p0, p1, stop := testParties(t, true)
	defer stop()

	U := []field.Elem{3, 4, 5}
	V := []field.Elem{7, 8}
	U0, U1 := share.Split(U, src)
	V0, V1 := share.Split(V, src)

	const userID, item = 2, 0
	k0, k1, err := dpf.Gen(uint64(len(V)), item, 1, src)
	assert.NilError(t, err)

	got := runQuery(t, p0, p1, U0, U1, V0, V1, userID, &k0, &k1)

	u := U[userID]
	want := field.Add(V[item], field.Mul(u, field.Sub(1, field.Mul(u, V[item]))))
	assert.Equal(t, got[item], want)
	assert.Equal(t, got[1], V[1])
}

func TestSequentialQueries(t *testing.T) {
	src := testSource()
	p0, p1, stop := testParties(t, false)
	defer stop()

	U := []field.Elem{2, 3}
	V := []field.Elem{5, 6, 7, 8}
	U0, U1 := share.Split(U, src)
	V0, V1 := share.Split(V, src)

	// Replay the same updates in the clear alongside the protocol.
	clear := append([]field.Elem(nil), V...)
	queries := []struct {
		user uint32
		item uint64
	}{{0, 2}, {1, 2}, {0, 0}}

	for _, q := range queries {
		k0, k1, err := dpf.Gen(uint64(len(V)), q.item, 1, src)
		assert.NilError(t, err)
		runQuery(t, p0, p1, U0, U1, V0, V1, q.user, &k0, &k1)

		u := U[q.user]
		vj := clear[q.item]
		clear[q.item] = field.Add(vj, field.Mul(u, field.Sub(1, field.Mul(u, vj))))
	}

	assert.DeepEqual(t, share.Reconstruct(V0, V1), clear)
}

func TestMismatchedUserIDsFollowP0(t *testing.T) {
	src := testSource()
	p0, p1, stop := testParties(t, false)
	defer stop()

	U := []field.Elem{9, 11}
	V := []field.Elem{1, 2}
	U0, U1 := share.Split(U, src)
	V0, V1 := share.Split(V, src)

	const item = 1
	k0, k1, err := dpf.Gen(uint64(len(V)), item, 1, src)
	assert.NilError(t, err)

	// P0 says user 0, P1 says user 1; both must settle on P0's.
	errs := make(chan error, 1)
	go func() {
		errs <- p0.ProcessQuery(U0, V0, 0, &k0)
	}()
	assert.NilError(t, p1.ProcessQuery(U1, V1, 1, &k1))
	assert.NilError(t, <-errs)

	got := share.Reconstruct(V0, V1)
	u := U[0]
	want := field.Add(V[item], field.Mul(u, field.Sub(1, field.Mul(u, V[item]))))
	assert.Equal(t, got[item], want)
}

func TestQueryDomainMismatch(t *testing.T) {
	src := testSource()
	k0, _, err := dpf.Gen(8, 0, 1, src)
	assert.NilError(t, err)

	p := &Party{Role: 0}
	err = p.ProcessQuery([]field.Elem{1}, []field.Elem{1, 2, 3, 4}, 0, &k0)
	assert.ErrorContains(t, err, "does not match")
}
