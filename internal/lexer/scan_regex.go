package lexer

import (
	"inkwell/internal/diag"
	"inkwell/internal/token"
)

// scanRegex: '/' body '/' flags. The body ends at the first unescaped '/';
// character classes are not tracked, so /[/]/ ends early.
func (lx *Lexer) scanRegex() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '/'
	closed := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == '/' {
			closed = true
			break
		}
	}
	if !closed {
		sp := lx.cursor.SpanFrom(start)
		lx.note(diag.LexUnterminatedRegex, sp, "unterminated regex literal")
		return token.Token{Kind: token.Regex, Span: sp}
	}
	// флаги
	for isAlphaByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.Regex, Span: lx.cursor.SpanFrom(start)}
}
