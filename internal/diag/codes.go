package diag

import "fmt"

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические (только информационные: лексер никогда не падает)
	LexInfo                     Code = 1000
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedRegex        Code = 1006

	// Линтер
	LintInfo       Code = 4000
	LintDebugPrint Code = 4001
	// LintCustom is the base for rules loaded from configuration; rule i gets LintCustom+i.
	LintCustom Code = 4100
)

var codeTitles = map[Code]string{
	UnknownCode:                 "unknown",
	LexInfo:                     "lexer note",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexUnterminatedRegex:        "unterminated regex literal",
	LintInfo:                    "lint note",
	LintDebugPrint:              "debug print left in code",
}

// ID returns the stable identifier, e.g. "LEX1002" or "LNT4001".
func (c Code) ID() string {
	switch {
	case c >= 1000 && c < 2000:
		return fmt.Sprintf("LEX%04d", uint16(c))
	case c >= 4000 && c < 5000:
		return fmt.Sprintf("LNT%04d", uint16(c))
	default:
		return fmt.Sprintf("E%04d", uint16(c))
	}
}

// Title returns a short description of the code.
func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	if c >= LintCustom && c < 5000 {
		return "configured lint rule"
	}
	return "unknown"
}

func (c Code) String() string {
	return c.ID()
}
