package lexer

import (
	"inkwell/internal/diag"
	"inkwell/internal/token"
)

// "//..." до '\n' (сам перевод строки не входит в токен)
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.Comment, Span: lx.cursor.SpanFrom(start)}
}

// "/* ... */" без вложенности: закрывает первый "*/".
func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Eat('/')
	lx.cursor.Eat('*')
	for !lx.cursor.EOF() {
		if lx.cursor.Eat('*') {
			if lx.cursor.Eat('/') {
				return token.Token{Kind: token.Comment, Span: lx.cursor.SpanFrom(start)}
			}
			continue
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.note(diag.LexUnterminatedBlockComment, sp, "unterminated block comment")
	return token.Token{Kind: token.Comment, Span: sp}
}
