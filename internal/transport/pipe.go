package transport

import (
	"sync"
)

// pipeDepth is how many frames may be in flight per direction before a
// writer blocks.
const pipeDepth = 64

// Pipe returns two connected in-process ends. Frames are copied on write,
// so neither side can observe the other's buffers. Closing either end
// closes both.
func Pipe() (Conn, Conn) {
	shared := &pipeState{done: make(chan struct{})}
	ab := make(chan []byte, pipeDepth)
	ba := make(chan []byte, pipeDepth)
	return &pipeEnd{in: ba, out: ab, state: shared},
		&pipeEnd{in: ab, out: ba, state: shared}
}

type pipeState struct {
	once sync.Once
	done chan struct{}
}

type pipeEnd struct {
	in    <-chan []byte
	out   chan<- []byte
	state *pipeState
}

// ReadFrame drains frames that were already queued before Close.
func (p *pipeEnd) ReadFrame() ([]byte, error) {
	select {
	case frame := <-p.in:
		return frame, nil
	default:
	}
	select {
	case frame := <-p.in:
		return frame, nil
	case <-p.state.done:
		return nil, ErrClosed
	}
}

func (p *pipeEnd) WriteFrame(frame []byte) error {
	cp := make([]byte, len(frame))
	copy(cp, frame)
	select {
	case <-p.state.done:
		return ErrClosed
	default:
	}
	select {
	case p.out <- cp:
		return nil
	case <-p.state.done:
		return ErrClosed
	}
}

func (p *pipeEnd) Close() error {
	p.state.once.Do(func() { close(p.state.done) })
	return nil
}
