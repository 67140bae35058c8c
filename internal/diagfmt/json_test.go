package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"inkwell/internal/diag"
	"inkwell/internal/source"
	"inkwell/internal/token"
)

func sampleFile() FileDiagnostics {
	f := source.Virtual("src/app.js", "let x = 1;\nconsole.log(x);\n")
	return FileDiagnostics{
		File: f,
		Diagnostics: []diag.Diagnostic{
			diag.New(diag.SevWarning, diag.LintDebugPrint, source.Span{Start: 11, End: 22}, "Debug console.log call left in code."),
		},
	}
}

// TestJSONFormat проверяет базовую структуру JSON вывода
func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, []FileDiagnostics{sampleFile()}, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if d.Severity != "WARNING" || d.Code != "LNT4001" || d.Title != "debug print left in code" {
		t.Errorf("unexpected diagnostic header %+v", d)
	}
	loc := d.Location
	if loc.File != "src/app.js" || loc.StartByte != 11 || loc.EndByte != 22 {
		t.Errorf("unexpected location %+v", loc)
	}
	if loc.StartLine != 2 || loc.StartCol != 1 || loc.EndLine != 2 || loc.EndCol != 12 {
		t.Errorf("unexpected positions %+v", loc)
	}
}

func TestJSONWithoutPositionsAndMax(t *testing.T) {
	fd := sampleFile()
	fd.Diagnostics = append(fd.Diagnostics, fd.Diagnostics[0])
	out := BuildDiagnosticsOutput([]FileDiagnostics{fd, {File: nil}}, JSONOpts{Max: 1, PathMode: PathModeBasename})
	if out.Count != 1 {
		t.Fatalf("Max not applied: %d", out.Count)
	}
	if out.Diagnostics[0].Location.StartLine != 0 {
		t.Errorf("positions included without IncludePositions")
	}
	if out.Diagnostics[0].Location.File != "app.js" {
		t.Errorf("basename mode = %q", out.Diagnostics[0].Location.File)
	}
}

// TestJSONEmpty: пустой результат сериализуется как [], а не null
func TestJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, nil, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"diagnostics": []`) {
		t.Fatalf("empty output = %s", buf.String())
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "inkwell", ToolVersion: "0.1.0", InvocationArgs: []string{"diag", "src"}}
	if err := Sarif(&buf, []FileDiagnostics{sampleFile()}, meta, JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "inkwell" || len(run.Tool.Driver.Rules) != 1 || run.Tool.Driver.Rules[0].ID != "LNT4001" {
		t.Errorf("unexpected driver %+v", run.Tool.Driver)
	}
	if len(run.Results) != 1 {
		t.Fatalf("results = %d", len(run.Results))
	}
	res := run.Results[0]
	region := res.Locations[0].PhysicalLocation.Region
	if res.Level != "warning" || region.StartLine != 2 || region.ByteOffset != 11 || region.ByteLength != 11 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestFormatTokensJSON(t *testing.T) {
	f := source.Virtual("t.js", "a\n+b")
	toks := []token.Token{
		{Kind: token.Variable, Span: source.Span{Start: 0, End: 1}},
		{Kind: token.Operator, Span: source.Span{Start: 2, End: 3}},
	}
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, f, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 || out[1].Text != "+" || out[1].Start.Line != 2 || out[1].Start.Col != 1 {
		t.Fatalf("tokens = %+v", out)
	}
	if !strings.Contains(buf.String(), `"kind": "operator"`) {
		t.Fatalf("kind not rendered by name: %s", buf.String())
	}
}
