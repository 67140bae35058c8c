package transport

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// MaxFrameSize bounds a single Content-Length body.
const MaxFrameSize = 64 << 20

// Stream frames messages over a byte stream with LSP-style headers:
//
//	Content-Length: 42\r\n
//	\r\n
//	<42 bytes>
type Stream struct {
	reader *bufio.Reader
	wmu    sync.Mutex
	writer io.Writer
	closer io.Closer
	closed atomic.Bool
}

// NewStream wraps r and w. c is closed by Close and may be nil.
func NewStream(r io.Reader, w io.Writer, c io.Closer) *Stream {
	return &Stream{
		reader: bufio.NewReaderSize(r, 64*1024),
		writer: w,
		closer: c,
	}
}

// ReadFrame returns io.EOF when the peer closes the stream between frames.
func (s *Stream) ReadFrame() ([]byte, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	contentLength := -1
	sawHeader := false
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && (sawHeader || line != "") {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if !sawHeader {
				// пустые строки между кадрами допустимы
				continue
			}
			break
		}
		sawHeader = true
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			length, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || length < 0 {
				return nil, fmt.Errorf("invalid Content-Length %q", value)
			}
			contentLength = length
		}
	}
	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}
	if contentLength > MaxFrameSize {
		return nil, fmt.Errorf("frame of %d bytes exceeds limit", contentLength)
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return payload, nil
}

// WriteFrame writes header and body under one lock so concurrent writers
// never interleave.
func (s *Stream) WriteFrame(frame []byte) error {
	if s.closed.Load() {
		return ErrClosed
	}
	header := "Content-Length: " + strconv.Itoa(len(frame)) + "\r\n\r\n"

	s.wmu.Lock()
	defer s.wmu.Unlock()
	if _, err := io.WriteString(s.writer, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := s.writer.Write(frame); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if f, ok := s.writer.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (s *Stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
