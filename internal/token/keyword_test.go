package token

import "testing"

func TestIsKeyword_Positive(t *testing.T) {
	for _, kw := range []string{"const", "let", "var", "function", "class", "return", "this", "await", "from"} {
		if !IsKeyword(kw) {
			t.Fatalf("IsKeyword(%q) = false, want true", kw)
		}
	}
}

func TestIsKeyword_Negative(t *testing.T) {
	// регистр важен
	notKw := []string{"Const", "LET", "Function", "true", "false", "console", "greet", ""}
	for _, s := range notKw {
		if IsKeyword(s) {
			t.Fatalf("IsKeyword(%q) returned true, want false", s)
		}
	}
}

func TestKeywordsOrderMatchesSet(t *testing.T) {
	list := Keywords()
	if len(list) != len(keywords) {
		t.Fatalf("Keywords() has %d entries, set has %d", len(list), len(keywords))
	}
	seen := make(map[string]bool, len(list))
	for _, kw := range list {
		if seen[kw] {
			t.Fatalf("duplicate keyword %q", kw)
		}
		seen[kw] = true
		if !IsKeyword(kw) {
			t.Fatalf("%q listed but not in set", kw)
		}
	}
	list[0] = "mutated"
	if Keywords()[0] == "mutated" {
		t.Fatalf("Keywords() must return a copy")
	}
}
