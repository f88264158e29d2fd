// Package wire frames protocol messages as native little-endian 8-byte
// field elements over a duplex byte stream.
package wire

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"mpcrec/field"
)

// IOStats counts the bytes moved through a connection.
type IOStats struct {
	Sent     uint64
	Received uint64
}

// Add computes the sum of two IOStats.
func (s IOStats) Add(o IOStats) IOStats {
	return IOStats{
		Sent:     s.Sent + o.Sent,
		Received: s.Received + o.Received,
	}
}

// Sub computes the difference of two IOStats.
func (s IOStats) Sub(o IOStats) IOStats {
	return IOStats{
		Sent:     s.Sent - o.Sent,
		Received: s.Received - o.Received,
	}
}

// Conn is a buffered protocol connection. Writes accumulate until Flush.
type Conn struct {
	closer io.Closer
	r      *bufio.Reader
	w      *bufio.Writer

	Stats IOStats
}

// NewConn creates a connection around rw. If rw is an io.Closer, Close
// closes it.
func NewConn(rw io.ReadWriter) *Conn {
	c := &Conn{
		r: bufio.NewReader(rw),
		w: bufio.NewWriter(rw),
	}
	if closer, ok := rw.(io.Closer); ok {
		c.closer = closer
	}
	return c
}

// Close closes the underlying stream, if it is closeable.
func (c *Conn) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

// Flush pushes all buffered writes to the stream.
func (c *Conn) Flush() error {
	return c.w.Flush()
}

// SendElem buffers one field element.
func (c *Conn) SendElem(v field.Elem) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	if _, err := c.w.Write(buf[:]); err != nil {
		return err
	}
	c.Stats.Sent += 8
	return nil
}

// RecvElem reads one field element, blocking until all 8 bytes arrive.
func (c *Conn) RecvElem() (field.Elem, error) {
	var buf [8]byte
	if _, err := io.ReadFull(c.r, buf[:]); err != nil {
		return 0, err
	}
	c.Stats.Received += 8
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// SendVec buffers all elements of v in order.
func (c *Conn) SendVec(v []field.Elem) error {
	for _, e := range v {
		if err := c.SendElem(e); err != nil {
			return err
		}
	}
	return nil
}

// RecvVec fills v with received elements.
func (c *Conn) RecvVec(v []field.Elem) error {
	for i := range v {
		e, err := c.RecvElem()
		if err != nil {
			return err
		}
		v[i] = e
	}
	return nil
}

// Exchange sends out and receives len(in) elements concurrently, so both
// endpoints of a symmetric exchange can transmit first without
// deadlocking on stream backpressure.
func (c *Conn) Exchange(out, in []field.Elem) error {
	sendErr := make(chan error, 1)
	go func() {
		if err := c.SendVec(out); err != nil {
			sendErr <- err
			return
		}
		sendErr <- c.Flush()
	}()
	recvErr := c.RecvVec(in)
	if err := <-sendErr; err != nil {
		return fmt.Errorf("exchange send: %v", err)
	}
	if recvErr != nil {
		return fmt.Errorf("exchange receive: %v", recvErr)
	}
	return nil
}
