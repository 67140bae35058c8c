package version

import (
	"strings"
	"testing"
)

func override(t *testing.T, version, commit, message, date string) {
	t.Helper()
	orig := [4]string{Version, GitCommit, GitMessage, BuildDate}
	Version, GitCommit, GitMessage, BuildDate = version, commit, message, date
	t.Cleanup(func() {
		Version, GitCommit, GitMessage, BuildDate = orig[0], orig[1], orig[2], orig[3]
	})
}

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	tests := []struct {
		version string
		plain   string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"weird", "weird"},
	}
	for _, tt := range tests {
		override(t, tt.version, "", "", "")
		if got := Colored(false); got != tt.plain {
			t.Errorf("Colored(false) for %q = %q", tt.version, got)
		}
	}

	override(t, "1.2.3-dev", "", "", "")
	got := Colored(true)
	if !strings.Contains(got, "\x1b[") || !strings.HasSuffix(got, "-dev") {
		t.Errorf("Colored(true) = %q", got)
	}
}

func TestDetails(t *testing.T) {
	override(t, "1.0.0", "", "", "")
	if d := Details(); len(d) != 0 {
		t.Fatalf("Details with nothing set = %q", d)
	}
	override(t, "1.0.0", "abc123", "fix lexer", "2024-01-15T10:30:00Z")
	d := Details()
	if len(d) != 2 || d[0] != "commit: abc123 (fix lexer)" || d[1] != "built: 2024-01-15T10:30:00Z" {
		t.Fatalf("Details = %q", d)
	}
}
