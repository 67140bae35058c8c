package lexer

import (
	"inkwell/internal/token"
)

// scanIdent сканирует [A-Za-z_$][A-Za-z0-9_$]* и классифицирует результат.
// Ключевые слова регистрозависимые.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text[sp.Start:sp.End]

	kind := token.Variable
	switch {
	case token.IsKeyword(text):
		kind = token.Keyword
	case token.IsBoolean(text):
		kind = token.Boolean
	case lx.cursor.NextNonSpace() == '(':
		// эвристика вызова: не проверяем, что это действительно функция
		kind = token.Function
	}
	return token.Token{Kind: kind, Span: sp}
}
