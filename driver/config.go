// Package driver loads the protocol's on-disk state (config, share
// vectors, query files) and runs the per-query protocol loop for one
// compute party.
package driver

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the protocol configuration shared by all three parties,
// plus the command-line state of the cmd binaries (see flags.go). Only
// the protocol fields are persisted to the config file.
type Config struct {
	NumUsers   int
	NumItems   int
	NumQueries int

	// For the cmd binaries.
	Role       int
	DataDir    string
	DealerAddr string
	PeerAddr   string
	ListenAddr string
	Port       int
	Small      bool
	Progress   bool

	FlagSet *flag.FlagSet
}

func isPowerOfTwo(x int) bool {
	return x > 0 && x&(x-1) == 0
}

// LoadConfig reads "num_users num_items num_queries" from path.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("Failed to open config file: %v", err)
	}
	defer f.Close()

	var c Config
	if _, err := fmt.Fscan(bufio.NewReader(f), &c.NumUsers, &c.NumItems, &c.NumQueries); err != nil {
		return Config{}, fmt.Errorf("Malformed config file %s: %v", path, err)
	}
	if c.NumUsers < 1 || c.NumQueries < 0 {
		return Config{}, fmt.Errorf("Bad config values in %s: %+v", path, c)
	}
	if !isPowerOfTwo(c.NumItems) {
		return Config{}, fmt.Errorf("num_items must be a power of two, got %d", c.NumItems)
	}
	return c, nil
}

// Save writes the config in the LoadConfig format.
func (c Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("Failed to write config file: %v", err)
	}
	if _, err := fmt.Fprintf(f, "%d %d %d\n", c.NumUsers, c.NumItems, c.NumQueries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// File layout under the data directory.

func ConfigPath(dir string) string {
	return filepath.Join(dir, "config.txt")
}

func USharePath(dir string, role int) string {
	return filepath.Join(dir, fmt.Sprintf("U%d_shares.txt", role))
}

func VSharePath(dir string, role int) string {
	return filepath.Join(dir, fmt.Sprintf("V%d_shares.txt", role))
}

func VUpdatedPath(dir string, role int) string {
	return filepath.Join(dir, fmt.Sprintf("V%d_shares_updated.txt", role))
}

func QueriesPath(dir string, role int) string {
	return filepath.Join(dir, fmt.Sprintf("queries_p%d.txt", role))
}
