package query

import (
	"inkwell/internal/analysis"
	"inkwell/internal/source"
)

// Word is a maximal run of word bytes ([A-Za-z0-9_$]).
type Word struct {
	Text string
	Span source.Span
}

func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') || b == '_' || b == '$'
}

// WordAt finds the word whose range contains index, boundaries inclusive:
// an index equal to a word's start or end still selects it. When index sits
// between two words with no separator that cannot happen; with one
// separator the earlier word (ending at index) wins.
func (s *Service) WordAt(snap *analysis.Snapshot, index int) (Word, bool) {
	return wordAt(snap.Text(), index)
}

func wordAt(text string, index int) (Word, bool) {
	n := len(text)
	if index < 0 || index > n {
		return Word{}, false
	}
	var start int
	switch {
	case index > 0 && isWordByte(text[index-1]):
		start = index - 1
		for start > 0 && isWordByte(text[start-1]) {
			start--
		}
	case index < n && isWordByte(text[index]):
		start = index
	default:
		return Word{}, false
	}
	end := index
	for end < n && isWordByte(text[end]) {
		end++
	}
	limit := source.Len(text)
	return Word{
		Text: text[start:end],
		Span: source.Span{Start: source.Offset(start, limit), End: source.Offset(end, limit)},
	}, true
}
