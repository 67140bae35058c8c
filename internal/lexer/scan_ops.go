package lexer

import (
	"inkwell/internal/token"
)

// scanOperator: жадный захват символов из набора операторов.
// Исключение для '.': если за точкой идут ещё операторные символы, точка
// становится отдельным оператором; одиночная точка перед идентификатором:
// это Property (доступ к члену).
func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()

	if lx.text[start] == '.' {
		if token.IsOperatorChar(lx.cursor.Peek()) {
			return token.Token{Kind: token.Operator, Span: lx.cursor.SpanFrom(start)}
		}
		if isIdentStartByte(lx.cursor.NextNonSpace()) {
			return token.Token{Kind: token.Property, Span: lx.cursor.SpanFrom(start)}
		}
		return token.Token{Kind: token.Operator, Span: lx.cursor.SpanFrom(start)}
	}

	for token.IsOperatorChar(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return token.Token{Kind: token.Operator, Span: lx.cursor.SpanFrom(start)}
}

func (lx *Lexer) scanPunctuation() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return token.Token{Kind: token.Punctuation, Span: lx.cursor.SpanFrom(start)}
}
