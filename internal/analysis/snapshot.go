// Package analysis turns one text into an immutable Snapshot: tokens,
// declarations and diagnostics computed together.
package analysis

import (
	"inkwell/internal/decl"
	"inkwell/internal/diag"
	"inkwell/internal/observ"
	"inkwell/internal/source"
	"inkwell/internal/token"
)

// Snapshot is never mutated after Analyze returns; a new text produces a new
// Snapshot.
type Snapshot struct {
	Version     uint64
	File        *source.File
	Tokens      []token.Token
	Decls       *decl.Index
	Diagnostics []diag.Diagnostic
	// Notes holds lexer notes (unterminated literals). They are not part
	// of Diagnostics: the editor only shows lint results.
	Notes   []diag.Diagnostic
	Timings observ.Report
}

// Text returns the analysed text.
func (s *Snapshot) Text() string {
	if s == nil || s.File == nil {
		return ""
	}
	return s.File.Content
}

// Len returns the text length in bytes.
func (s *Snapshot) Len() uint32 {
	return source.Len(s.Text())
}

// Position converts an offset into a 1-based line/column.
func (s *Snapshot) Position(off uint32) source.LineCol {
	if s == nil || s.File == nil {
		return source.LineCol{Line: 1, Col: 1}
	}
	return s.File.Position(off)
}
