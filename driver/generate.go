package driver

import (
	"fmt"
	"math/rand"
	"os"

	"mpcrec/dpf"
	"mpcrec/field"
	"mpcrec/share"
)

// Generate produces a complete protocol input set under dataDir: the
// config file, split shares of fresh uniform U and V, and both parties'
// query files with random (user, item) targets. It returns the
// cleartext U and V for callers that want to sanity-check the run.
func Generate(cfg Config, dataDir string, src *rand.Rand) ([]field.Elem, []field.Elem, error) {
	if !isPowerOfTwo(cfg.NumItems) {
		return nil, nil, fmt.Errorf("num_items must be a power of two, got %d", cfg.NumItems)
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, nil, err
	}

	U := make([]field.Elem, cfg.NumUsers)
	V := make([]field.Elem, cfg.NumItems)
	for i := range U {
		U[i] = field.Rand(src)
	}
	for i := range V {
		V[i] = field.Rand(src)
	}

	U0, U1 := share.Split(U, src)
	V0, V1 := share.Split(V, src)
	for role, vecs := range []struct{ u, v share.Vector }{{U0, V0}, {U1, V1}} {
		if err := share.SaveVector(USharePath(dataDir, role), vecs.u); err != nil {
			return nil, nil, err
		}
		if err := share.SaveVector(VSharePath(dataDir, role), vecs.v); err != nil {
			return nil, nil, err
		}
	}
	if err := cfg.Save(ConfigPath(dataDir)); err != nil {
		return nil, nil, err
	}

	q0 := make([]Query, cfg.NumQueries)
	q1 := make([]Query, cfg.NumQueries)
	for i := 0; i < cfg.NumQueries; i++ {
		userID := uint32(src.Intn(cfg.NumUsers))
		item := uint64(src.Intn(cfg.NumItems))
		k0, k1, err := dpf.Gen(uint64(cfg.NumItems), item, 1, src)
		if err != nil {
			return nil, nil, err
		}
		q0[i] = Query{UserID: userID, Key: k0}
		q1[i] = Query{UserID: userID, Key: k1}
	}
	if err := WriteQueries(QueriesPath(dataDir, 0), q0, uint64(cfg.NumItems)); err != nil {
		return nil, nil, err
	}
	if err := WriteQueries(QueriesPath(dataDir, 1), q1, uint64(cfg.NumItems)); err != nil {
		return nil, nil, err
	}
	return U, V, nil
}
