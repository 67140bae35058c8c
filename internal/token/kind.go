package token

import "fmt"

// Kind represents the highlighting category of a token.
type Kind uint8

const (
	// Invalid is the zero Kind and is never produced by the lexer.
	Invalid Kind = iota
	// Keyword is a reserved word such as const or return.
	Keyword
	// Variable is any identifier that is not a keyword, boolean or call.
	Variable
	// Function is an identifier directly followed by '(' (call-site heuristic).
	Function
	// Boolean is the true or false literal.
	Boolean
	// Number is a decimal literal, optionally with a fraction.
	Number
	// String is a quoted literal using ", ' or `.
	String
	// Comment is a line or block comment.
	Comment
	// Regex is a regular expression literal including its flags.
	Regex
	// Operator is a run of operator characters.
	Operator
	// Property is a lone '.' that starts a member access.
	Property
	// Punctuation is a single bracket, comma or semicolon.
	Punctuation
)

var kindNames = [...]string{
	Invalid:     "invalid",
	Keyword:     "keyword",
	Variable:    "variable",
	Function:    "function",
	Boolean:     "boolean",
	Number:      "number",
	String:      "string",
	Comment:     "comment",
	Regex:       "regex",
	Operator:    "operator",
	Property:    "property",
	Punctuation: "punctuation",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), true
		}
	}
	return Invalid, false
}

// MarshalText encodes the kind as its lowercase name on the wire.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	parsed, ok := ParseKind(string(b))
	if !ok {
		return fmt.Errorf("unknown token kind %q", b)
	}
	*k = parsed
	return nil
}
