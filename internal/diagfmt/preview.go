package diagfmt

import (
	"math"

	"fortio.org/safecast"

	"inkwell/internal/source"
)

// contentLen returns len(f.Content) as an offset.
func contentLen(f *source.File) uint32 {
	return source.Len(f.Content)
}

func lineStartOffset(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return contentLen(f)
}

// lineEndOffset returns the offset of the newline ending line, or the end
// of the text for the last line.
func lineEndOffset(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	idx := line - 1
	if int(idx) < len(f.LineIdx) {
		return f.LineIdx[idx]
	}
	return contentLen(f)
}

func lineCount(f *source.File) uint32 {
	n, err := safecast.Conv[uint32](len(f.LineIdx) + 1)
	if err != nil {
		return math.MaxUint32
	}
	return n
}

// snippetLine is one line of source shown under a diagnostic.
type snippetLine struct {
	num  uint32
	text string
	// подчёркивание [from, to) в байтах строки; to == 0 значит без подчёркивания
	from, to int
}

// buildSnippet returns the lines covered by span plus ctx lines around it.
func buildSnippet(f *source.File, span source.Span, ctx int) []snippetLine {
	if f == nil {
		return nil
	}
	start, end := f.Resolve(span)
	first := start.Line
	last := max(end.Line, first)
	if ctx > 0 {
		c, err := safecast.Conv[uint32](ctx)
		if err == nil {
			first = max(1, first-min(first-1, c))
			last = min(lineCount(f), last+c)
		}
	}
	lines := make([]snippetLine, 0, last-first+1)
	for n := first; n <= last; n++ {
		ls, le := lineStartOffset(f, n), lineEndOffset(f, n)
		ln := snippetLine{num: n, text: f.Content[ls:le]}
		if n >= start.Line && n <= end.Line {
			from, to := ls, le
			if n == start.Line {
				from = span.Start
			}
			if n == end.Line {
				to = span.End
			}
			if to <= from {
				// пустой span: одна каретка
				to = from + 1
			}
			ln.from, ln.to = int(from-ls), int(to-ls)
		}
		lines = append(lines, ln)
	}
	return lines
}
