// Package testkit holds invariant checks shared by tests of the analysis
// pipeline.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"inkwell/internal/diag"
	"inkwell/internal/source"
	"inkwell/internal/token"
)

func textLen(text string) (uint32, error) {
	n, err := safecast.Conv[uint32](len(text))
	if err != nil {
		return 0, fmt.Errorf("text length overflow: %w", err)
	}
	return n, nil
}

// CheckTokens verifies that tokens are non-empty, sorted by start,
// non-overlapping and inside text.
func CheckTokens(tokens []token.Token, text string) error {
	limit, err := textLen(text)
	if err != nil {
		return err
	}
	var lastEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		if sp.Start >= sp.End {
			return fmt.Errorf("token %d (%s) has empty span %v", i, tok.Kind, sp)
		}
		if sp.Start < lastEnd {
			return fmt.Errorf("token %d starts at %d before previous end %d", i, sp.Start, lastEnd)
		}
		if sp.End > limit {
			return fmt.Errorf("token %d ends at %d past text length %d", i, sp.End, limit)
		}
		lastEnd = sp.End
	}
	return nil
}

// CheckDiagnostics verifies that diagnostics are inside text, sorted by
// start and carry a message.
func CheckDiagnostics(diags []diag.Diagnostic, text string) error {
	limit, err := textLen(text)
	if err != nil {
		return err
	}
	var prev source.Span
	for i, d := range diags {
		if d.Primary.End > limit || d.Primary.Start > d.Primary.End {
			return fmt.Errorf("diagnostic %d span %v outside text of length %d", i, d.Primary, limit)
		}
		if i > 0 && d.Primary.Start < prev.Start {
			return fmt.Errorf("diagnostic %d at %d is before previous at %d", i, d.Primary.Start, prev.Start)
		}
		if d.Message == "" {
			return fmt.Errorf("diagnostic %d (%s) has no message", i, d.Code)
		}
		prev = d.Primary
	}
	return nil
}
