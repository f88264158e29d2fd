// Command verify reconstructs both parties' share files, replays every
// query in the clear and checks the updated V shares against the result.
package main

import (
	"fmt"
	"log"
	"os"

	"mpcrec/driver"
	"mpcrec/share"

	"github.com/fatih/color"
)

func main() {
	flags := new(driver.Config).AddDataFlags().Parse()
	dataDir := flags.DataDir

	cfg, err := driver.LoadConfig(driver.ConfigPath(dataDir))
	if err != nil {
		log.Fatalf("%v", err)
	}

	U := reconstruct(driver.USharePath(dataDir, 0), driver.USharePath(dataDir, 1), cfg.NumUsers)
	V := reconstruct(driver.VSharePath(dataDir, 0), driver.VSharePath(dataDir, 1), cfg.NumItems)
	updated := reconstruct(driver.VUpdatedPath(dataDir, 0), driver.VUpdatedPath(dataDir, 1), cfg.NumItems)

	q0 := loadQueries(dataDir, 0, cfg)
	q1 := loadQueries(dataDir, 1, cfg)
	if err := driver.Replay(U, V, q0, q1); err != nil {
		log.Fatalf("replay failed: %v", err)
	}

	diffs := driver.Diff(V, updated)
	if len(diffs) == 0 {
		color.Green("OK: %d queries verified, all %d item slots match", len(q0), cfg.NumItems)
		return
	}
	for _, i := range diffs {
		fmt.Printf("V[%d]: protocol %d, expected %d\n", i, updated[i], V[i])
	}
	color.Red("MISMATCH in %d of %d slots", len(diffs), cfg.NumItems)
	os.Exit(1)
}

func reconstruct(path0, path1 string, n int) []uint64 {
	a, err := share.LoadVector(path0, n)
	if err != nil {
		log.Fatalf("%v", err)
	}
	b, err := share.LoadVector(path1, n)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return share.Reconstruct(a, b)
}

func loadQueries(dir string, role int, cfg driver.Config) []driver.Query {
	q, err := driver.LoadQueries(driver.QueriesPath(dir, role), uint64(cfg.NumItems))
	if err != nil {
		log.Fatalf("%v", err)
	}
	return q
}
