// Package wire frames newline-delimited JSON messages over a net.Conn.
//
// Every message is exactly one line: <json>\n. The IPC socket is local and
// owner-restricted by the OS, so there is no encryption layer.
package wire

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

const (
	// MaxMessageSize is the largest line we will read (16 MiB).
	MaxMessageSize = 16 * 1024 * 1024

	writeDeadline = 5 * time.Second
)

// Conn wraps a net.Conn with buffered line framing.
type Conn struct {
	conn net.Conn
	br   *bufio.Reader
}

// New wraps conn.
func New(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		br:   bufio.NewReaderSize(conn, 64*1024),
	}
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.conn.Close() }

// Write serialises v to JSON and writes it followed by a newline.
func (c *Conn) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("wire encode: %w", err)
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	defer func() { _ = c.conn.SetWriteDeadline(time.Time{}) }()
	if _, err := c.conn.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("wire write: %w", err)
	}
	return nil
}

// Read reads one line and unmarshals it into v.
func (c *Conn) Read(v any) error {
	line, err := c.readLine()
	if err != nil {
		return err
	}
	if err := json.Unmarshal(line, v); err != nil {
		return fmt.Errorf("wire decode: %w", err)
	}
	return nil
}

func (c *Conn) readLine() ([]byte, error) {
	var buf []byte
	for {
		chunk, isPrefix, err := c.br.ReadLine()
		if err != nil {
			return nil, fmt.Errorf("wire read: %w", err)
		}
		buf = append(buf, chunk...)
		if len(buf) > MaxMessageSize {
			return nil, fmt.Errorf("wire read: message exceeds %d bytes", MaxMessageSize)
		}
		if !isPrefix {
			return buf, nil
		}
	}
}
