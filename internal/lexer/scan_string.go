package lexer

import (
	"inkwell/internal/diag"
	"inkwell/internal/token"
)

// scanString handles "...", '...' and `...`. A backslash swallows the next
// byte. Newlines are allowed; an unterminated literal runs to end of text.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			return token.Token{Kind: token.String, Span: lx.cursor.SpanFrom(start)}
		}
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.note(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.String, Span: sp}
}
