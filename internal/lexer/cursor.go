package lexer

import (
	"inkwell/internal/source"
)

// Cursor представляет собой позицию в тексте
type Cursor struct {
	Text string
	Off  uint32
	// Limit is the exclusive upper bound for Off; len(Text).
	Limit uint32
}

// NewCursor creates a new cursor over text.
func NewCursor(text string) Cursor {
	return Cursor{
		Text:  text,
		Off:   0,
		Limit: source.Len(text),
	}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.Text[c.Off]
}

// PeekAt читает байт со смещением n от курсора, либо 0 за концом текста
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.Text[c.Off+n]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.Text[c.Off]
	c.Off++
	return b
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		Start: uint32(m),
		End:   c.Off,
	}
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.Text[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// SkipSpace advances over ' ', '\t', '\r' and '\n'.
func (c *Cursor) SkipSpace() {
	for !c.EOF() && isSpace(c.Text[c.Off]) {
		c.Off++
	}
}

// NextNonSpace returns the first byte at or after the cursor that is not
// whitespace, without moving the cursor. Returns 0 at end of text.
func (c *Cursor) NextNonSpace() byte {
	off := c.Off
	for off < c.Limit && isSpace(c.Text[off]) {
		off++
	}
	if off >= c.Limit {
		return 0
	}
	return c.Text[off]
}
