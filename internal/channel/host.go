// Package channel is the host side of the analysis channel: it pushes text
// to the engine, correlates query responses by request id, and delivers
// snapshot pushes.
package channel

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"inkwell/internal/protocol"
	"inkwell/internal/trace"
	"inkwell/internal/transport"
)

// ErrClosed fails every outstanding and future request once the host is
// closed or the engine connection goes away.
var ErrClosed = errors.New("channel: closed")

// Options configures a Host.
type Options struct {
	// Codec must match the engine's; nil means protocol.JSON.
	Codec protocol.Codec
	// Tracer receives send/receive/drop events; nil means trace.Nop.
	Tracer trace.Tracer
}

// Host is safe for concurrent use. Queries may be issued from any number of
// goroutines; responses are matched purely by request id.
type Host struct {
	conn   transport.Conn
	codec  protocol.Codec
	tracer trace.Tracer

	nextID  atomic.Uint64
	mu      sync.Mutex
	pending map[uint64]chan protocol.Envelope
	onSnap  func(protocol.Update)

	version atomic.Uint64
	closed  atomic.Bool
	done    chan struct{}
}

func NewHost(conn transport.Conn, opts Options) *Host {
	codec := opts.Codec
	if codec == nil {
		codec = protocol.JSON
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	return &Host{
		conn:    conn,
		codec:   codec,
		tracer:  tracer,
		pending: make(map[uint64]chan protocol.Envelope),
		done:    make(chan struct{}),
	}
}

// Start runs the read loop in the background. Cancelling ctx closes the host.
func (h *Host) Start(ctx context.Context) {
	go h.readLoop()
	go func() {
		select {
		case <-ctx.Done():
			h.Close()
		case <-h.done:
		}
	}()
}

// OnSnapshot registers the callback for update pushes, replacing any
// previous one. It runs on the read loop goroutine, in push order.
func (h *Host) OnSnapshot(fn func(protocol.Update)) {
	h.mu.Lock()
	h.onSnap = fn
	h.mu.Unlock()
}

// LastVersion is the version of the most recent update push, 0 if none.
// A response whose Version is above the version the caller last saw was
// computed against newer text.
func (h *Host) LastVersion() uint64 {
	return h.version.Load()
}

// Pending returns the number of requests awaiting a response.
func (h *Host) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.pending)
}

// Done is closed when the host is closed.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// UpdateText sends the full buffer text. The engine answers with an update
// push, not a response.
func (h *Host) UpdateText(text string) error {
	env, err := protocol.NewEnvelope(h.codec, protocol.TypeUpdateText, 0, text)
	if err != nil {
		return err
	}
	return h.send(env)
}

// Request sends a query and returns its Future. Request ids come from a
// monotonic counter starting at 1, so no two outstanding requests share one.
func (h *Host) Request(typ protocol.MessageType, payload any) (*Future, error) {
	if !typ.IsQuery() {
		return nil, fmt.Errorf("%s: %w", typ, protocol.ErrUnknownType)
	}
	if h.closed.Load() {
		return nil, ErrClosed
	}
	id := h.nextID.Add(1)
	env, err := protocol.NewEnvelope(h.codec, typ, id, payload)
	if err != nil {
		return nil, err
	}

	ch := make(chan protocol.Envelope, 1)
	h.mu.Lock()
	h.pending[id] = ch
	h.mu.Unlock()

	if err := h.send(env); err != nil {
		h.forget(id)
		return nil, err
	}
	return &Future{id: id, typ: typ, ch: ch, host: h}, nil
}

// Close fails all outstanding futures with ErrClosed and closes the
// connection. Safe to call more than once.
func (h *Host) Close() error {
	if h.closed.Swap(true) {
		return nil
	}
	close(h.done)
	// каналы не закрываем: ожидающие получат сигнал из done
	h.mu.Lock()
	h.pending = make(map[uint64]chan protocol.Envelope)
	h.mu.Unlock()
	return h.conn.Close()
}

func (h *Host) send(env protocol.Envelope) error {
	if h.closed.Load() {
		return ErrClosed
	}
	data, err := h.codec.EncodeEnvelope(env)
	if err != nil {
		return err
	}
	trace.Point(h.tracer, trace.ScopeMessage, "host.send", env.String())
	if err := h.conn.WriteFrame(data); err != nil {
		if errors.Is(err, transport.ErrClosed) {
			return ErrClosed
		}
		return fmt.Errorf("send %s: %w", env, err)
	}
	return nil
}

func (h *Host) forget(id uint64) {
	h.mu.Lock()
	delete(h.pending, id)
	h.mu.Unlock()
}

func (h *Host) readLoop() {
	for {
		frame, err := h.conn.ReadFrame()
		if err != nil {
			if !h.closed.Load() {
				trace.Point(h.tracer, trace.ScopeDriver, "host.disconnect", err.Error())
			}
			h.Close()
			return
		}
		env, err := h.codec.DecodeEnvelope(frame)
		if err != nil {
			trace.Point(h.tracer, trace.ScopeMessage, "host.drop", err.Error())
			continue
		}
		h.dispatch(env)
	}
}

func (h *Host) dispatch(env protocol.Envelope) {
	if env.Type == protocol.TypeUpdate {
		h.deliverSnapshot(env)
		return
	}

	h.mu.Lock()
	ch, ok := h.pending[env.RequestID]
	if ok {
		// запись удаляется ровно в момент прихода ответа
		delete(h.pending, env.RequestID)
	}
	h.mu.Unlock()

	if !ok {
		trace.Point(h.tracer, trace.ScopeMessage, "host.drop", "no pending request "+strconv.FormatUint(env.RequestID, 10)+" for "+string(env.Type))
		return
	}
	trace.Point(h.tracer, trace.ScopeMessage, "host.recv", env.String())
	ch <- env
}

func (h *Host) deliverSnapshot(env protocol.Envelope) {
	var upd protocol.Update
	if _, err := protocol.DecodePayload(h.codec, env, &upd); err != nil {
		trace.Point(h.tracer, trace.ScopeMessage, "host.drop", err.Error())
		return
	}
	h.version.Store(upd.Version)
	h.mu.Lock()
	fn := h.onSnap
	h.mu.Unlock()
	if fn != nil {
		fn(upd)
	}
}
