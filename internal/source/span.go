package source

import (
	"fmt"
	"math"

	"fortio.org/safecast"
)

// Span is a half-open byte range into a single text buffer.
type Span struct {
	Start uint32 `json:"start"` // в байтах включительно
	End   uint32 `json:"end"`   // в байтах не включительно
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Contains reports whether off lies inside the span, End inclusive.
// Queries that treat a caret sitting right after a word as "on" it rely on this.
func (s Span) Contains(off uint32) bool {
	return off >= s.Start && off <= s.End
}

// Text returns the slice of text covered by the span, clamped to the text bounds.
func (s Span) Text(text string) string {
	n := Len(text)
	start, end := min(s.Start, n), min(s.End, n)
	if start > end {
		return ""
	}
	return text[start:end]
}

// Len returns len(text) as uint32, saturating at math.MaxUint32: bytes
// past 4 GiB are not addressable and are left out of every span.
func Len(text string) uint32 {
	return lenOf(len(text))
}

func lenOf(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return math.MaxUint32
	}
	return v
}

// Offset converts a caller-supplied index into a byte offset clamped to [0, limit].
func Offset(index int, limit uint32) uint32 {
	if index <= 0 {
		return 0
	}
	off, err := safecast.Conv[uint32](index)
	if err != nil || off > limit {
		return limit
	}
	return off
}
