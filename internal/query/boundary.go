package query

import (
	"fmt"

	"inkwell/internal/analysis"
)

// Direction of a word jump.
type Direction uint8

const (
	Right Direction = iota
	Left
)

func (d Direction) String() string {
	if d == Left {
		return "left"
	}
	return "right"
}

// ParseDirection accepts left/right and backward/forward.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "right", "forward":
		return Right, nil
	case "left", "backward":
		return Left, nil
	}
	return Right, fmt.Errorf("unknown direction %q (expected: left|right)", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// isJumpSpace matches the \s class for ASCII: space, tab, LF, CR, FF, VT.
func isJumpSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// NextWordBoundary emulates ctrl+arrow caret movement. Right skips the rest
// of the current non-space run and then the following spaces. Left steps
// back one byte, skips spaces, skips the non-space run and lands on its
// first byte. The result is always within [0, len(text)].
func (s *Service) NextWordBoundary(snap *analysis.Snapshot, index int, dir Direction) int {
	text := snap.Text()
	n := len(text)
	i := clampIndex(index, n)

	if dir == Right {
		for i < n && !isJumpSpace(text[i]) {
			i++
		}
		for i < n && isJumpSpace(text[i]) {
			i++
		}
		return i
	}

	if i == 0 {
		return 0
	}
	i--
	for i >= 0 && isJumpSpace(text[i]) {
		i--
	}
	for i >= 0 && !isJumpSpace(text[i]) {
		i--
	}
	return i + 1
}
