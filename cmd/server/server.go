// Command server runs one compute party (P0 or P1) of the secure
// recommender-update protocol.
package main

import (
	"fmt"
	"log"
	"net"
	"time"

	"mpcrec/driver"
	"mpcrec/mpc"
	"mpcrec/share"
	"mpcrec/wire"

	"github.com/fatih/color"
)

func main() {
	flags := new(driver.Config).AddDataFlags().AddServerFlags().Parse()
	role := flags.Role

	cfg, err := driver.LoadConfig(driver.ConfigPath(flags.DataDir))
	if err != nil {
		log.Fatalf("%v", err)
	}
	u, err := share.LoadVector(driver.USharePath(flags.DataDir, role), cfg.NumUsers)
	if err != nil {
		log.Fatalf("Failed to load share files for P%d: %v", role, err)
	}
	v, err := share.LoadVector(driver.VSharePath(flags.DataDir, role), cfg.NumItems)
	if err != nil {
		log.Fatalf("Failed to load share files for P%d: %v", role, err)
	}
	queries, err := driver.LoadQueries(driver.QueriesPath(flags.DataDir, role), uint64(cfg.NumItems))
	if err != nil {
		log.Fatalf("%v", err)
	}

	dealer := wire.NewConn(dialRetry(flags.DealerAddr))
	party := &mpc.Party{Role: role, Dealer: dealer}
	if err := party.Handshake(); err != nil {
		log.Fatalf("dealer handshake: %v", err)
	}
	party.Peer = connectPeer(role, flags.PeerAddr, flags.ListenAddr)

	color.Green("P%d: starting query processing for %d queries", role, len(queries))
	runner := &driver.Runner{
		Party:    party,
		Config:   cfg,
		U:        u,
		V:        v,
		Queries:  queries,
		Progress: flags.Progress,
	}
	if err := runner.Run(); err != nil {
		log.Fatalf("P%d: %v", role, err)
	}

	if err := share.SaveVector(driver.VUpdatedPath(flags.DataDir, role), runner.V); err != nil {
		log.Fatalf("P%d: %v", role, err)
	}
	fmt.Printf("P%d: completed all queries\n", role)
}

// dialRetry keeps trying addr until the far side is up; the three
// parties may start in any order.
func dialRetry(addr string) net.Conn {
	for {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			return conn
		}
		log.Printf("Connect to %s failed, retrying: %v", addr, err)
		time.Sleep(time.Second)
	}
}

// connectPeer establishes the compute-party link: P1 accepts, P0 dials.
func connectPeer(role int, peerAddr, listenAddr string) *wire.Conn {
	if role == 0 {
		return wire.NewConn(dialRetry(peerAddr))
	}
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		log.Fatalf("Failed to listen tcp: %v", err)
	}
	defer ln.Close()
	conn, err := ln.Accept()
	if err != nil {
		log.Fatalf("TCP Accept failed: %v", err)
	}
	return wire.NewConn(conn)
}
