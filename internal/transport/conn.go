// Package transport moves opaque frames between the host and the engine.
// Frames are whole encoded envelopes; the transport never looks inside.
package transport

import "errors"

// ErrClosed is returned by operations on a closed connection.
var ErrClosed = errors.New("transport: connection closed")

// Conn is one end of a bidirectional frame channel. WriteFrame may be called
// from several goroutines; ReadFrame from one.
type Conn interface {
	ReadFrame() ([]byte, error)
	WriteFrame(frame []byte) error
	Close() error
}
