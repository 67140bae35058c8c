package channel

import (
	"context"

	"inkwell/internal/protocol"
)

// Future is the pending result of one Request.
type Future struct {
	id   uint64
	typ  protocol.MessageType
	ch   chan protocol.Envelope
	host *Host
}

// ID returns the request id the response will carry.
func (f *Future) ID() uint64 { return f.id }

// Wait blocks until the response arrives, ctx ends, or the host closes.
// Giving up on ctx removes the pending entry; a late response is then
// dropped by the read loop.
func (f *Future) Wait(ctx context.Context) (protocol.Envelope, error) {
	select {
	case env := <-f.ch:
		return env, nil
	default:
	}
	select {
	case env := <-f.ch:
		return env, nil
	case <-ctx.Done():
		f.host.forget(f.id)
		return protocol.Envelope{}, ctx.Err()
	case <-f.host.done:
		return protocol.Envelope{}, ErrClosed
	}
}
