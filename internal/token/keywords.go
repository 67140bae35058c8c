package token

var keywords = map[string]struct{}{
	"class":    {},
	"extends":  {},
	"super":    {},
	"const":    {},
	"let":      {},
	"var":      {},
	"function": {},
	"async":    {},
	"await":    {},
	"new":      {},
	"if":       {},
	"else":     {},
	"return":   {},
	"for":      {},
	"while":    {},
	"do":       {},
	"switch":   {},
	"case":     {},
	"default":  {},
	"break":    {},
	"continue": {},
	"try":      {},
	"catch":    {},
	"finally":  {},
	"import":   {},
	"export":   {},
	"from":     {},
	"as":       {},
	"this":     {},
}

// keywordOrder фиксирует порядок для детерминированного вывода (completions).
var keywordOrder = []string{
	"class", "extends", "super", "const", "let", "var", "function", "async", "await",
	"new", "if", "else", "return", "for", "while", "do", "switch", "case", "default",
	"break", "continue", "try", "catch", "finally", "import", "export", "from", "as", "this",
}

// IsKeyword reports whether ident is a reserved word. Case-sensitive.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// IsBoolean reports whether ident is the true or false literal.
func IsBoolean(ident string) bool {
	return ident == "true" || ident == "false"
}

// Keywords returns the keyword set in a stable order. The slice is a copy.
func Keywords() []string {
	out := make([]string, len(keywordOrder))
	copy(out, keywordOrder)
	return out
}
