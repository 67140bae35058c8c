package decl

import "fmt"

// Kind is the keyword that introduced a declaration.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindConst
	KindLet
	KindVar
	KindFunction
	KindClass
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindConst:    "const",
	KindLet:      "let",
	KindVar:      "var",
	KindFunction: "function",
	KindClass:    "class",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// KindOf maps a declaring keyword to its Kind; ok is false for any other word.
func KindOf(keyword string) (Kind, bool) {
	for k := KindConst; k <= KindClass; k++ {
		if kindNames[k] == keyword {
			return k, true
		}
	}
	return KindInvalid, false
}

func (k Kind) MarshalText() ([]byte, error) {
	if k == KindInvalid || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("decl: cannot marshal %v", k)
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	kind, ok := KindOf(string(b))
	if !ok {
		return fmt.Errorf("decl: unknown declaration kind %q", b)
	}
	*k = kind
	return nil
}
