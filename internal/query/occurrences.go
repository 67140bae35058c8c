package query

import (
	"strings"

	"inkwell/internal/analysis"
	"inkwell/internal/source"
	"inkwell/internal/token"
)

// Occurrences returns every whole-word, case-sensitive match of the word at
// index, in text order. Keywords are not symbols and yield nothing. The
// result is never nil.
func (s *Service) Occurrences(snap *analysis.Snapshot, index int) []source.Span {
	out := []source.Span{}
	word, ok := s.WordAt(snap, index)
	if !ok || token.IsKeyword(word.Text) {
		return out
	}
	text := snap.Text()
	limit := source.Len(text)
	w := word.Text
	pos := 0
	for pos <= len(text)-len(w) {
		i := strings.Index(text[pos:], w)
		if i < 0 {
			break
		}
		start := pos + i
		end := start + len(w)
		if (start == 0 || !isWordByte(text[start-1])) && (end == len(text) || !isWordByte(text[end])) {
			out = append(out, source.Span{Start: source.Offset(start, limit), End: source.Offset(end, limit)})
			pos = end
			continue
		}
		pos = start + 1
	}
	return out
}
