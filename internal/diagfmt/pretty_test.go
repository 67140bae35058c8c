package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"inkwell/internal/diag"
	"inkwell/internal/source"
	"inkwell/internal/token"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	f := source.Virtual("/home/user/project/src/test.js", "console.log(1)")
	fd := FileDiagnostics{File: f, Diagnostics: []diag.Diagnostic{
		diag.New(diag.SevWarning, diag.LintDebugPrint, source.Span{Start: 0, End: 11}, "m"),
	}}

	tests := []struct {
		name string
		mode PathMode
		base string
		want string
	}{
		{"absolute", PathModeAbsolute, "", "/home/user/project/src/test.js:1:1:"},
		{"relative", PathModeRelative, "/home/user/project", "src/test.js:1:1:"},
		{"basename", PathModeBasename, "", "test.js:1:1:"},
		{"auto inside base", PathModeAuto, "/home/user/project", "src/test.js:1:1:"},
		{"auto outside base", PathModeAuto, "/elsewhere", "/home/user/project/src/test.js:1:1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := PrettyOpts{PathMode: tt.mode, BaseDir: tt.base}
			if err := Pretty(&buf, []FileDiagnostics{fd}, opts); err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Errorf("output %q does not start with %q", buf.String(), tt.want)
			}
		})
	}
}

// TestPrettyUnderline проверяет строку контекста и подчёркивание
func TestPrettyUnderline(t *testing.T) {
	f := source.Virtual("a.js", "let x = 1;\n  console.log(x);\nx++;\n")
	fd := FileDiagnostics{File: f, Diagnostics: []diag.Diagnostic{
		diag.New(diag.SevWarning, diag.LintDebugPrint, source.Span{Start: 13, End: 24}, "Debug console.log call left in code."),
	}}
	var buf bytes.Buffer
	if err := Pretty(&buf, []FileDiagnostics{fd}, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "a.js:2:3: WARNING LNT4001: Debug console.log call left in code.\n" +
		"2 |   console.log(x);\n" +
		"  |   ^~~~~~~~~~~\n"
	if buf.String() != want {
		t.Fatalf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyContextLines(t *testing.T) {
	f := source.Virtual("a.js", "one\ntwo\nthree\nfour\n")
	fd := FileDiagnostics{File: f, Diagnostics: []diag.Diagnostic{
		diag.New(diag.SevError, diag.LintCustom, source.Span{Start: 8, End: 13}, "bad"),
	}}
	var buf bytes.Buffer
	if err := Pretty(&buf, []FileDiagnostics{fd}, PrettyOpts{Context: 1}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"a.js:3:1: ERROR LNT4100: bad", "2 | two", "3 | three", "  | ^~~~~", "4 | four"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "1 | one") {
		t.Errorf("context wider than requested:\n%s", out)
	}
}

// TestPrettyWideRunes: подчёркивание учитывает ширину символов на экране
func TestPrettyWideRunes(t *testing.T) {
	text := "s = \"日本\"; console.log(s)"
	start := strings.Index(text, "console")
	f := source.Virtual("w.js", text)
	fd := FileDiagnostics{File: f, Diagnostics: []diag.Diagnostic{
		diag.New(diag.SevWarning, diag.LintDebugPrint, source.Span{Start: uint32(start), End: uint32(start + 11)}, "m"),
	}}
	var buf bytes.Buffer
	if err := Pretty(&buf, []FileDiagnostics{fd}, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(buf.String(), "\n")
	// "s = "日本"; " занимает 12 колонок на экране
	if want := "  | " + strings.Repeat(" ", 12) + "^~~~~~~~~~~"; lines[2] != want {
		t.Fatalf("underline = %q, want %q", lines[2], want)
	}
}

func TestPrettyColor(t *testing.T) {
	fd := sampleFile()
	var plain, colored bytes.Buffer
	if err := Pretty(&plain, []FileDiagnostics{fd}, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := Pretty(&colored, []FileDiagnostics{fd}, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escapes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escapes")
	}
}

func TestFormatTokensPretty(t *testing.T) {
	f := source.Virtual("t.js", "let x")
	toks := []token.Token{
		{Kind: token.Keyword, Span: source.Span{Start: 0, End: 3}},
		{Kind: token.Variable, Span: source.Span{Start: 4, End: 5}},
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, f, toks, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	if !strings.HasPrefix(lines[0], "  1: keyword  \"let\"") || !strings.HasSuffix(lines[0], "at 1:1-1:4") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  2: variable \"x\"") || !strings.HasSuffix(lines[1], "at 1:5-1:6") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestShort(t *testing.T) {
	var buf bytes.Buffer
	if err := Short(&buf, []FileDiagnostics{sampleFile()}, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "src/app.js:2:1: warning LNT4001: Debug console.log call left in code.\n"
	if buf.String() != want {
		t.Fatalf("Short = %q, want %q", buf.String(), want)
	}
}
