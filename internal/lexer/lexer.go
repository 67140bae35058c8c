package lexer

import (
	"inkwell/internal/token"
)

// Lexer scans text left to right in a single pass. The only state that
// survives between tokens is the cursor and the previously emitted token,
// which drives the regex-versus-division decision.
type Lexer struct {
	text    string
	cursor  Cursor
	opts    Options
	prev    token.Token
	hasPrev bool
}

func New(text string, opts Options) *Lexer {
	return &Lexer{
		text:   text,
		cursor: NewCursor(text),
		opts:   opts,
	}
}

// Tokenize scans the whole text without a reporter.
func Tokenize(text string) []token.Token {
	return New(text, Options{}).All()
}

// All drains the lexer and returns every remaining token.
func (lx *Lexer) All() []token.Token {
	tokens := make([]token.Token, 0, len(lx.text)/4)
	for {
		tok, ok := lx.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next возвращает следующий токен. ok == false означает конец текста;
// после этого Next всегда возвращает false.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	for {
		// 1) пробелы никогда не становятся токенами
		lx.cursor.SkipSpace()
		if lx.cursor.EOF() {
			return token.Token{}, false
		}

		// 2) Посмотреть текущий байт и выбрать сканер
		ch := lx.cursor.Peek()
		next := lx.cursor.PeekAt(1)

		switch {
		case isIdentStartByte(ch):
			tok = lx.scanIdent()
		case isDec(ch):
			tok = lx.scanNumber()
		case ch == '"' || ch == '\'' || ch == '`':
			tok = lx.scanString()
		case ch == '/' && next == '/':
			tok = lx.scanLineComment()
		case ch == '/' && next == '*':
			tok = lx.scanBlockComment()
		case ch == '/' && lx.regexAllowed():
			tok = lx.scanRegex()
		case token.IsOperatorChar(ch):
			tok = lx.scanOperator()
		case token.IsPunctuationChar(ch):
			tok = lx.scanPunctuation()
		default:
			// неизвестный символ, пропускаем
			lx.cursor.Bump()
			continue
		}

		lx.prev, lx.hasPrev = tok, true
		return tok, true
	}
}

// regexAllowed decides whether '/' opens a regex literal, looking only at the
// previously emitted token.
func (lx *Lexer) regexAllowed() bool {
	if !lx.hasPrev {
		return true
	}
	switch lx.prev.Kind {
	case token.Operator:
		return true
	case token.Punctuation:
		switch lx.prev.Text(lx.text) {
		case ")", "]", "++", "--":
			return false
		}
		return true
	}
	return false
}
