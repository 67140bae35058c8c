// Package lint reports pattern-based diagnostics over raw text. It does not
// look at tokens: some rules target substrings the lexer splits apart.
package lint

import (
	"fmt"

	"inkwell/internal/diag"
)

// Rule reports every non-overlapping literal occurrence of Pattern.
type Rule struct {
	Pattern  string
	Severity diag.Severity
	Message  string
	Code     diag.Code
}

// DebugPrintRule flags leftover console.log calls.
var DebugPrintRule = Rule{
	Pattern:  "console.log",
	Severity: diag.SevWarning,
	Message:  "Debug console.log call left in code.",
	Code:     diag.LintDebugPrint,
}

// DefaultRules returns the built-in rule set. The slice is fresh on every call.
func DefaultRules() []Rule {
	return []Rule{DebugPrintRule}
}

// Validate rejects rules that can never match.
func (r Rule) Validate() error {
	if r.Pattern == "" {
		return fmt.Errorf("lint rule %s: empty pattern", r.Code.ID())
	}
	if r.Message == "" {
		return fmt.Errorf("lint rule %q: empty message", r.Pattern)
	}
	return nil
}
