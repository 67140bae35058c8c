package token

import "inkwell/internal/source"

type Token struct {
	Kind Kind
	Span source.Span
}

// Text returns the token's lexeme within the text it was scanned from.
func (t Token) Text(text string) string {
	return t.Span.Text(text)
}

func (t Token) IsIdent() bool {
	switch t.Kind {
	case Keyword, Variable, Function, Boolean:
		return true
	default:
		return false
	}
}

// IsOperatorChar reports whether b belongs to the operator character set.
func IsOperatorChar(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '%', '<', '>', '=', '!', '&', '|', '?', ':', '.':
		return true
	}
	return false
}

// IsPunctuationChar reports whether b is a single-character punctuation token.
func IsPunctuationChar(b byte) bool {
	switch b {
	case '{', '}', '(', ')', '[', ']', ',', ';':
		return true
	}
	return false
}
