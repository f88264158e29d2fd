package beaver

import (
	"fmt"
	"net"

	"mpcrec/wire"
)

// ListenAndServe accepts the two compute parties on addr, serves their
// bundle requests, and returns once both have disconnected. Connection
// order does not matter; each party identifies itself in its first
// element.
func (d *Dealer) ListenAndServe(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("Failed to listen tcp: %v", err)
	}
	defer ln.Close()

	var conns [2]*wire.Conn
	for i := 0; i < 2; i++ {
		nc, err := ln.Accept()
		if err != nil {
			return fmt.Errorf("TCP Accept failed: %v", err)
		}
		conn := wire.NewConn(nc)
		role, err := ReadRole(conn)
		if err != nil {
			conn.Close()
			return err
		}
		if conns[role] != nil {
			conn.Close()
			conns[role].Close()
			return fmt.Errorf("both clients claimed role %d", role)
		}
		conns[role] = conn
	}

	go d.Run()
	defer d.Stop()

	errs := make(chan error, 2)
	for role, conn := range conns {
		role, conn := role, conn
		go func() {
			errs <- d.ServeConn(conn, role)
		}()
	}

	var firstErr error
	for i := 0; i < 2; i++ {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	for _, c := range conns {
		c.Close()
	}
	return firstErr
}
