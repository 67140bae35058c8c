package transport

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
)

type rwc struct {
	io.Reader
	io.Writer
	closed bool
}

func (r *rwc) Close() error { r.closed = true; return nil }

func TestStreamRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewStream(nil, &buf, nil)
	frames := []string{`{"type":"updateText"}`, "", "ümlaut"}
	for _, f := range frames {
		if err := w.WriteFrame([]byte(f)); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if !strings.HasPrefix(buf.String(), "Content-Length: 21\r\n\r\n{") {
		t.Fatalf("unexpected wire %q", buf.String())
	}
	r := NewStream(&buf, io.Discard, nil)
	for _, want := range frames {
		got, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if string(got) != want {
			t.Fatalf("frame = %q, want %q", got, want)
		}
	}
	if _, err := r.ReadFrame(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF at end, got %v", err)
	}
}

func TestStreamHeaderVariants(t *testing.T) {
	input := "\r\ncontent-length: 2\r\nContent-Type: application/json\r\n\r\nok"
	got, err := NewStream(strings.NewReader(input), io.Discard, nil).ReadFrame()
	if err != nil || string(got) != "ok" {
		t.Fatalf("ReadFrame = %q, %v", got, err)
	}
}

func TestStreamErrors(t *testing.T) {
	cases := map[string]string{
		"missing length": "Content-Type: x\r\n\r\n",
		"bad length":     "Content-Length: abc\r\n\r\n",
		"negative":       "Content-Length: -4\r\n\r\n",
		"too large":      "Content-Length: 999999999999\r\n\r\n",
		"short body":     "Content-Length: 10\r\n\r\nabc",
		"cut header":     "Content-Length: 3",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewStream(strings.NewReader(in), io.Discard, nil).ReadFrame()
			if err == nil || errors.Is(err, io.EOF) {
				t.Fatalf("expected a framing error, got %v", err)
			}
		})
	}
}

func TestStreamClose(t *testing.T) {
	c := &rwc{Reader: strings.NewReader(""), Writer: io.Discard}
	s := NewStream(c, c, c)
	if err := s.Close(); err != nil || !c.closed {
		t.Fatalf("Close must close the underlying closer")
	}
	if err := s.WriteFrame([]byte("x")); !errors.Is(err, ErrClosed) {
		t.Fatalf("WriteFrame after Close = %v", err)
	}
	if _, err := s.ReadFrame(); !errors.Is(err, ErrClosed) {
		t.Fatalf("ReadFrame after Close = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close = %v", err)
	}
}

func TestPipeCopiesFrames(t *testing.T) {
	a, b := Pipe()
	defer a.Close()
	frame := []byte("hello")
	if err := a.WriteFrame(frame); err != nil {
		t.Fatal(err)
	}
	frame[0] = 'j'
	got, err := b.ReadFrame()
	if err != nil || string(got) != "hello" {
		t.Fatalf("ReadFrame = %q, %v", got, err)
	}
	if err := b.WriteFrame([]byte("back")); err != nil {
		t.Fatal(err)
	}
	if got, _ := a.ReadFrame(); string(got) != "back" {
		t.Fatalf("reverse direction = %q", got)
	}
}

func TestPipeCloseUnblocksReaders(t *testing.T) {
	a, b := Pipe()
	var wg sync.WaitGroup
	wg.Add(1)
	var readErr error
	go func() {
		defer wg.Done()
		_, readErr = b.ReadFrame()
	}()
	a.Close()
	wg.Wait()
	if !errors.Is(readErr, ErrClosed) {
		t.Fatalf("blocked reader got %v, want ErrClosed", readErr)
	}
	if err := b.WriteFrame([]byte("x")); !errors.Is(err, ErrClosed) {
		t.Fatalf("write on closed pipe = %v", err)
	}
}

func TestPipeDrainsAfterClose(t *testing.T) {
	a, b := Pipe()
	if err := a.WriteFrame([]byte("last")); err != nil {
		t.Fatal(err)
	}
	a.Close()
	got, err := b.ReadFrame()
	if err != nil || string(got) != "last" {
		t.Fatalf("queued frame lost: %q %v", got, err)
	}
}
