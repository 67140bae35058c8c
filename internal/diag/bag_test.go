package diag

import (
	"encoding/json"
	"testing"

	"inkwell/internal/source"
)

func TestBagRespectsCap(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		sp := source.Span{Start: uint32(i), End: uint32(i + 1)}
		added := bag.Add(New(SevWarning, LintDebugPrint, sp, "x"))
		if want := i < 2; added != want {
			t.Fatalf("Add #%d = %v, want %v", i, added, want)
		}
	}
	if bag.Len() != 2 {
		t.Fatalf("expected full bag with 2 items, got %d", bag.Len())
	}
}

func TestBagUnbounded(t *testing.T) {
	bag := NewBag(0)
	for i := 0; i < 100; i++ {
		if !bag.Add(Diagnostic{}) {
			t.Fatalf("unbounded bag rejected item %d", i)
		}
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 4}
	r.Report(LintDebugPrint, SevWarning, sp, "dup")
	r.Report(LintDebugPrint, SevWarning, sp, "dup")
	r.Report(LintDebugPrint, SevWarning, sp, "other")
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics after dedup, got %d", bag.Len())
	}
	if r.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", r.Dropped())
	}
}

func TestSeverityText(t *testing.T) {
	data, err := json.Marshal(SevWarning)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"warning"` {
		t.Fatalf("unexpected JSON %s", data)
	}
	for _, in := range []string{"info", "WARNING", "warn", " error "} {
		if _, err := ParseSeverity(in); err != nil {
			t.Fatalf("ParseSeverity(%q): %v", in, err)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Fatalf("expected error for unknown severity")
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		LexUnterminatedString: "LEX1002",
		LintDebugPrint:        "LNT4001",
		LintCustom + 3:        "LNT4103",
		UnknownCode:           "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if (LintCustom + 1).Title() != "configured lint rule" {
		t.Fatalf("unexpected title for custom rule")
	}
}
