package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"inkwell/internal/diag"
	"inkwell/internal/lexer"
	"inkwell/internal/source"
	"inkwell/internal/token"
)

type tk struct {
	kind token.Kind
	text string
}

// makeTestLexer создаёт лексер для тестовой строки с reporter'ом в Bag
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	bag := diag.NewBag(0)
	lx := lexer.New(input, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func tokensToString(input string, tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text(input))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// expectTokens проверяет последовательность (kind, text)
func expectTokens(t *testing.T, input string, expected []tk) {
	t.Helper()
	tokens := lexer.Tokenize(input)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\nInput: %q\nTokens: %s",
			len(expected), len(tokens), input, tokensToString(input, tokens))
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i].kind || tok.Text(input) != expected[i].text {
			t.Errorf("token %d: expected %v(%q), got %v(%q)",
				i, expected[i].kind, expected[i].text, tok.Kind, tok.Text(input))
		}
	}
}

func TestEmptyInput(t *testing.T) {
	if got := lexer.Tokenize(""); len(got) != 0 {
		t.Fatalf("expected no tokens, got %v", got)
	}
	if got := lexer.Tokenize(" \t\r\n  "); len(got) != 0 {
		t.Fatalf("whitespace-only input must produce no tokens, got %v", got)
	}
}

// ====== идентификаторы ======

func TestIdentifierClassification(t *testing.T) {
	expectTokens(t, "const x = true; foo(1); bar (2); $el _priv", []tk{
		{token.Keyword, "const"},
		{token.Variable, "x"},
		{token.Operator, "="},
		{token.Boolean, "true"},
		{token.Punctuation, ";"},
		{token.Function, "foo"},
		{token.Punctuation, "("},
		{token.Number, "1"},
		{token.Punctuation, ")"},
		{token.Punctuation, ";"},
		{token.Function, "bar"},
		{token.Punctuation, "("},
		{token.Number, "2"},
		{token.Punctuation, ")"},
		{token.Punctuation, ";"},
		{token.Variable, "$el"},
		{token.Variable, "_priv"},
	})
}

func TestFunctionHeuristicAcrossNewline(t *testing.T) {
	expectTokens(t, "call\n\t(", []tk{
		{token.Function, "call"},
		{token.Punctuation, "("},
	})
}

func TestKeywordBeforeParenStaysKeyword(t *testing.T) {
	expectTokens(t, "if (a)", []tk{
		{token.Keyword, "if"},
		{token.Punctuation, "("},
		{token.Variable, "a"},
		{token.Punctuation, ")"},
	})
}

func TestAdjacentTokensWithoutGap(t *testing.T) {
	tokens := lexer.Tokenize("a(")
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Span.End != tokens[1].Span.Start {
		t.Fatalf("expected zero-width gap, got %v and %v", tokens[0].Span, tokens[1].Span)
	}
}

// ====== числа ======

func TestNumbers(t *testing.T) {
	expectTokens(t, "42 3.14 7. 1e5", []tk{
		{token.Number, "42"},
		{token.Number, "3.14"},
		{token.Number, "7"},
		{token.Operator, "."},
		{token.Number, "1"},
		{token.Variable, "e5"},
	})
}

// ====== строки ======

func TestStrings(t *testing.T) {
	expectTokens(t, `"a\"b" 'c' `+"`t${x}`", []tk{
		{token.String, `"a\"b"`},
		{token.String, `'c'`},
		{token.String, "`t${x}`"},
	})
}

func TestStringQuoteMustMatch(t *testing.T) {
	expectTokens(t, `"it's" x`, []tk{
		{token.String, `"it's"`},
		{token.Variable, "x"},
	})
}

func TestUnterminatedLiteralsRunToEnd(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  token.Kind
		code  diag.Code
	}{
		{"string", `"never closed`, token.String, diag.LexUnterminatedString},
		{"template", "`multi\nline", token.String, diag.LexUnterminatedString},
		{"block comment", "/* unterminated", token.Comment, diag.LexUnterminatedBlockComment},
		{"regex", "/abc", token.Regex, diag.LexUnterminatedRegex},
		{"trailing backslash", `'abc\`, token.String, diag.LexUnterminatedString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, bag := makeTestLexer(tt.input)
			tokens := lx.All()
			if len(tokens) != 1 {
				t.Fatalf("expected exactly one token, got %s", tokensToString(tt.input, tokens))
			}
			want := source.Span{Start: 0, End: uint32(len(tt.input))}
			if tokens[0].Kind != tt.kind || tokens[0].Span != want {
				t.Fatalf("got %v %v, want %v %v", tokens[0].Kind, tokens[0].Span, tt.kind, want)
			}
			if bag.Len() != 1 || bag.Items()[0].Code != tt.code {
				t.Fatalf("expected one %v note, got %+v", tt.code, bag.Items())
			}
			if bag.Items()[0].Severity != diag.SevInfo {
				t.Fatalf("lexer notes must be informational")
			}
		})
	}
}

// ====== комментарии ======

func TestComments(t *testing.T) {
	expectTokens(t, "a // line\n/* block */ b /*/ still */", []tk{
		{token.Variable, "a"},
		{token.Comment, "// line"},
		{token.Comment, "/* block */"},
		{token.Variable, "b"},
		{token.Comment, "/*/ still */"},
	})
}

func TestBlockCommentStarRuns(t *testing.T) {
	expectTokens(t, "/***/x/** a **/ y /* * / */", []tk{
		{token.Comment, "/***/"},
		{token.Variable, "x"},
		{token.Comment, "/** a **/"},
		{token.Variable, "y"},
		{token.Comment, "/* * / */"},
	})
}

// ====== regex vs деление ======

func TestRegexVersusDivision(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tk
	}{
		{
			name:  "division after identifier",
			input: "a / b",
			want:  []tk{{token.Variable, "a"}, {token.Operator, "/"}, {token.Variable, "b"}},
		},
		{
			name:  "division after number",
			input: "4 /2/ 1",
			want: []tk{
				{token.Number, "4"}, {token.Operator, "/"}, {token.Number, "2"},
				{token.Operator, "/"}, {token.Number, "1"},
			},
		},
		{
			name:  "regex after assignment",
			input: "x = /ab+c/gi;",
			want: []tk{
				{token.Variable, "x"}, {token.Operator, "="}, {token.Regex, "/ab+c/gi"},
				{token.Punctuation, ";"},
			},
		},
		{
			name:  "regex at start",
			input: "/a\\/b/.test(s)",
			want: []tk{
				{token.Regex, "/a\\/b/"}, {token.Property, "."}, {token.Function, "test"},
				{token.Punctuation, "("}, {token.Variable, "s"}, {token.Punctuation, ")"},
			},
		},
		{
			name:  "regex after open paren",
			input: "f(/x/)",
			want: []tk{
				{token.Function, "f"}, {token.Punctuation, "("}, {token.Regex, "/x/"},
				{token.Punctuation, ")"},
			},
		},
		{
			name:  "division after close paren",
			input: "(a)/2",
			want: []tk{
				{token.Punctuation, "("}, {token.Variable, "a"}, {token.Punctuation, ")"},
				{token.Operator, "/"}, {token.Number, "2"},
			},
		},
		{
			name:  "division after close bracket",
			input: "x[0] /y",
			want: []tk{
				{token.Variable, "x"}, {token.Punctuation, "["}, {token.Number, "0"},
				{token.Punctuation, "]"}, {token.Operator, "/"}, {token.Variable, "y"},
			},
		},
		{
			name:  "compound division assignment",
			input: "n /= 2",
			want:  []tk{{token.Variable, "n"}, {token.Operator, "/="}, {token.Number, "2"}},
		},
		{
			name:  "regex after keyword is division",
			input: "return /x/",
			want: []tk{
				{token.Keyword, "return"}, {token.Operator, "/"}, {token.Variable, "x"},
				{token.Operator, "/"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.input, tt.want)
		})
	}
}

// ====== операторы и пунктуация ======

func TestOperatorsAndProperty(t *testing.T) {
	expectTokens(t, "a === b && c?.d ... e . f . 1", []tk{
		{token.Variable, "a"},
		{token.Operator, "==="},
		{token.Variable, "b"},
		{token.Operator, "&&"},
		{token.Variable, "c"},
		{token.Operator, "?."},
		{token.Variable, "d"},
		{token.Operator, "."},
		{token.Operator, "."},
		{token.Property, "."},
		{token.Variable, "e"},
		{token.Property, "."},
		{token.Variable, "f"},
		{token.Operator, "."},
		{token.Number, "1"},
	})
}

func TestPropertyChain(t *testing.T) {
	expectTokens(t, "console.log(1);", []tk{
		{token.Variable, "console"},
		{token.Property, "."},
		{token.Function, "log"},
		{token.Punctuation, "("},
		{token.Number, "1"},
		{token.Punctuation, ")"},
		{token.Punctuation, ";"},
	})
}

func TestUnknownCharactersSkipped(t *testing.T) {
	expectTokens(t, "a # b @ \\ ^ ~ é", []tk{
		{token.Variable, "a"},
		{token.Variable, "b"},
	})
}

func TestNextAfterEOF(t *testing.T) {
	lx, _ := makeTestLexer("x")
	if _, ok := lx.Next(); !ok {
		t.Fatalf("expected first token")
	}
	for i := 0; i < 3; i++ {
		if _, ok := lx.Next(); ok {
			t.Fatalf("Next after EOF must keep returning false")
		}
	}
}

func TestNoReporterIsSafe(t *testing.T) {
	tokens := lexer.New(`"open`, lexer.Options{}).All()
	if len(tokens) != 1 {
		t.Fatalf("expected one token, got %d", len(tokens))
	}
}

func TestSampleProgram(t *testing.T) {
	input := "class MyClass extends BaseClass {\n" +
		"    constructor() {\n" +
		"        console.log(\"Hello, World!\");\n" +
		"        const regex = /ab+c/i;\n" +
		"        this.value = true;\n" +
		"    }\n" +
		"}\n"
	tokens := lexer.Tokenize(input)
	counts := map[token.Kind]int{}
	for _, tok := range tokens {
		counts[tok.Kind]++
	}
	if counts[token.Regex] != 1 {
		t.Fatalf("expected one regex token, got %d: %s", counts[token.Regex], tokensToString(input, tokens))
	}
	if counts[token.String] != 1 || counts[token.Boolean] != 1 {
		t.Fatalf("unexpected literal counts: %v", counts)
	}
	if counts[token.Property] != 2 {
		t.Fatalf("expected 2 property dots, got %d", counts[token.Property])
	}
}
