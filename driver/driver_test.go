package driver

import (
	"math/rand"
	"net"
	"testing"

	"mpcrec/beaver"
	"mpcrec/dpf"
	"mpcrec/field"
	"mpcrec/mpc"
	"mpcrec/share"
	"mpcrec/wire"

	"gotest.tools/assert"
)

func testSource() *rand.Rand {
	return rand.New(rand.NewSource(17))
}

func TestConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{NumUsers: 12, NumItems: 16, NumQueries: 3}
	assert.NilError(t, cfg.Save(ConfigPath(dir)))

	loaded, err := LoadConfig(ConfigPath(dir))
	assert.NilError(t, err)
	assert.Equal(t, loaded, cfg)
}

func TestConfigRejectsBadItemCount(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{NumUsers: 2, NumItems: 10, NumQueries: 1}
	assert.NilError(t, cfg.Save(ConfigPath(dir)))

	_, err := LoadConfig(ConfigPath(dir))
	assert.ErrorContains(t, err, "power of two")
}

func TestQueryFileRoundTrip(t *testing.T) {
	src := testSource()
	dir := t.TempDir()

	var queries []Query
	for i := 0; i < 3; i++ {
		k0, _, err := dpf.Gen(8, uint64(i), 1, src)
		assert.NilError(t, err)
		queries = append(queries, Query{UserID: uint32(i * 7), Key: k0})
	}
	path := QueriesPath(dir, 0)
	assert.NilError(t, WriteQueries(path, queries, 8))

	loaded, err := LoadQueries(path, 8)
	assert.NilError(t, err)
	assert.DeepEqual(t, loaded, queries)
}

func TestGenerateWritesConsistentShares(t *testing.T) {
	src := testSource()
	dir := t.TempDir()
	cfg := Config{NumUsers: 4, NumItems: 8, NumQueries: 2}

	U, V, err := Generate(cfg, dir, src)
	assert.NilError(t, err)

	U0, err := share.LoadVector(USharePath(dir, 0), cfg.NumUsers)
	assert.NilError(t, err)
	U1, err := share.LoadVector(USharePath(dir, 1), cfg.NumUsers)
	assert.NilError(t, err)
	assert.DeepEqual(t, share.Reconstruct(U0, U1), U)

	V0, err := share.LoadVector(VSharePath(dir, 0), cfg.NumItems)
	assert.NilError(t, err)
	V1, err := share.LoadVector(VSharePath(dir, 1), cfg.NumItems)
	assert.NilError(t, err)
	assert.DeepEqual(t, share.Reconstruct(V0, V1), V)

	q0, err := LoadQueries(QueriesPath(dir, 0), uint64(cfg.NumItems))
	assert.NilError(t, err)
	q1, err := LoadQueries(QueriesPath(dir, 1), uint64(cfg.NumItems))
	assert.NilError(t, err)
	assert.Equal(t, len(q0), cfg.NumQueries)
	assert.Equal(t, len(q1), cfg.NumQueries)

	// Replaying the generated queries must only touch valid one-hot
	// slots.
	assert.NilError(t, Replay(U, V, q0, q1))
}

func testParty(t *testing.T, d *beaver.Dealer, role int, peer net.Conn) *mpc.Party {
	t.Helper()
	server, client := net.Pipe()
	go d.ServeConn(wire.NewConn(server), role)
	return &mpc.Party{Role: role, Peer: wire.NewConn(peer), Dealer: wire.NewConn(client)}
}

func TestEndToEndFromDisk(t *testing.T) {
	src := testSource()
	dir := t.TempDir()
	cfg := Config{NumUsers: 2, NumItems: 4, NumQueries: 3}

	U, V, err := Generate(cfg, dir, src)
	assert.NilError(t, err)

	d := beaver.NewDealer(testSource(), false)
	go d.Run()
	defer d.Stop()
	peer0, peer1 := net.Pipe()
	peers := [2]net.Conn{peer0, peer1}

	runners := [2]*Runner{}
	for role := 0; role < 2; role++ {
		u, err := share.LoadVector(USharePath(dir, role), cfg.NumUsers)
		assert.NilError(t, err)
		v, err := share.LoadVector(VSharePath(dir, role), cfg.NumItems)
		assert.NilError(t, err)
		queries, err := LoadQueries(QueriesPath(dir, role), uint64(cfg.NumItems))
		assert.NilError(t, err)
		runners[role] = &Runner{
			Party:   testParty(t, d, role, peers[role]),
			Config:  cfg,
			U:       u,
			V:       v,
			Queries: queries,
		}
	}

	errs := make(chan error, 1)
	go func() {
		errs <- runners[0].Run()
	}()
	assert.NilError(t, runners[1].Run())
	assert.NilError(t, <-errs)

	// The protocol's result must equal the cleartext replay.
	q0, err := LoadQueries(QueriesPath(dir, 0), uint64(cfg.NumItems))
	assert.NilError(t, err)
	q1, err := LoadQueries(QueriesPath(dir, 1), uint64(cfg.NumItems))
	assert.NilError(t, err)
	assert.NilError(t, Replay(U, V, q0, q1))
	assert.DeepEqual(t, share.Reconstruct(runners[0].V, runners[1].V), V)
}

func TestZeroQueriesLeaveSharesIntact(t *testing.T) {
	src := testSource()
	dir := t.TempDir()
	cfg := Config{NumUsers: 2, NumItems: 4, NumQueries: 0}

	_, V, err := Generate(cfg, dir, src)
	assert.NilError(t, err)

	V0, err := share.LoadVector(VSharePath(dir, 0), cfg.NumItems)
	assert.NilError(t, err)
	V1, err := share.LoadVector(VSharePath(dir, 1), cfg.NumItems)
	assert.NilError(t, err)

	d := beaver.NewDealer(testSource(), false)
	go d.Run()
	defer d.Stop()
	peer0, peer1 := net.Pipe()

	r0 := &Runner{Party: testParty(t, d, 0, peer0), Config: cfg, U: make(share.Vector, 2), V: V0}
	r1 := &Runner{Party: testParty(t, d, 1, peer1), Config: cfg, U: make(share.Vector, 2), V: V1}

	errs := make(chan error, 1)
	go func() {
		errs <- r0.Run()
	}()
	assert.NilError(t, r1.Run())
	assert.NilError(t, <-errs)

	assert.DeepEqual(t, share.Reconstruct(r0.V, r1.V), V)
}

func TestReplayRejectsBadKeyPairs(t *testing.T) {
	src := testSource()
	k0, _, err := dpf.Gen(4, 1, 1, src)
	assert.NilError(t, err)
	_, k1, err := dpf.Gen(4, 1, 1, src)
	assert.NilError(t, err)

	// Keys from two different pairs do not recombine to one-hot.
	U := []field.Elem{1}
	V := []field.Elem{1, 2, 3, 4}
	err = Replay(U, V, []Query{{0, k0}}, []Query{{0, k1}})
	assert.Check(t, err != nil)
}
