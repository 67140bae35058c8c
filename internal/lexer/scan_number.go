package lexer

import "inkwell/internal/token"

// scanNumber: [0-9]+ ('.' [0-9]+)?
// Экспоненты, префиксы 0x/0b и разделители '_' не поддерживаются.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.consumeDigits()
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump() // '.'
		lx.consumeDigits()
	}
	return token.Token{Kind: token.Number, Span: lx.cursor.SpanFrom(start)}
}

func (lx *Lexer) consumeDigits() {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
