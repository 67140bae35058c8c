// Package diag defines the diagnostic model shared by the lexer and the lint
// scanner.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error (severity.go). Serialised lowercase.
//   - Code – compact numeric identifier with a stable string form (codes.go).
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – the byte span the finding points at.
//
// # Producers
//
// Producers emit through the Reporter interface and never own storage.
// BagReporter collects into a Bag, which enforces a cap and provides a
// deterministic Sort. DedupReporter drops exact repeats before forwarding.
//
// Package diag performs no formatting; rendering lives in internal/diagfmt.
package diag
