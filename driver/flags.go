package driver

import (
	"flag"
	"log"
	"os"
)

// Command-line state shared by the cmd binaries. The first Add*Flags
// call in a chain binds the flag set; Parse validates and log.Fatalfs on
// bad values.

// AddDataFlags registers the data-directory flag. Call first for
// binaries that read or write the protocol files.
func (c *Config) AddDataFlags() *Config {
	c.FlagSet = flag.CommandLine
	c.FlagSet.StringVar(&c.DataDir, "dataDir", "data", "Protocol data directory")
	return c
}

// AddGenFlags registers the setup parameters for gen_queries.
func (c *Config) AddGenFlags() *Config {
	c.FlagSet.IntVar(&c.NumUsers, "numUsers", 12, "Number of user factors")
	c.FlagSet.IntVar(&c.NumItems, "numItems", 16, "Number of item factors (must be a power of two)")
	c.FlagSet.IntVar(&c.NumQueries, "numQueries", 10, "Number of private update queries to generate")
	return c
}

// AddServerFlags registers the compute-party flags.
func (c *Config) AddServerFlags() *Config {
	c.FlagSet.IntVar(&c.Role, "role", 0, "Party role: 0 or 1")
	c.FlagSet.StringVar(&c.DealerAddr, "dealerAddr", "p2:9002", "<HOSTNAME>:<PORT> of the preprocessing dealer")
	c.FlagSet.StringVar(&c.PeerAddr, "peerAddr", "p1:9001", "<HOSTNAME>:<PORT> P0 dials to reach P1")
	c.FlagSet.StringVar(&c.ListenAddr, "listenAddr", ":9001", "Address P1 listens on for P0")
	c.FlagSet.BoolVar(&c.Progress, "progress", true, "Print per-query progress")
	return c
}

// AddDealerFlags registers the helper-party flags. Call first for p2.
func (c *Config) AddDealerFlags() *Config {
	c.FlagSet = flag.CommandLine
	c.FlagSet.IntVar(&c.Port, "p", 9002, "Listening port")
	c.FlagSet.BoolVar(&c.Small, "small", false,
		"Draw preprocessing values from {1..5} instead of uniformly (debugging only)")
	return c
}

// Parse parses the command line once and validates flag values.
func (c *Config) Parse() *Config {
	if c.FlagSet.Parsed() {
		return c
	}
	if err := c.FlagSet.Parse(os.Args[1:]); err != nil {
		log.Fatalf("%v", err)
	}
	if c.Role != 0 && c.Role != 1 {
		log.Fatalf("role must be 0 or 1, got %d", c.Role)
	}
	if c.NumItems != 0 && !isPowerOfTwo(c.NumItems) {
		log.Fatalf("numItems must be a power of two, got %d", c.NumItems)
	}
	return c
}
