package protocol

import (
	"strings"

	"inkwell/internal/diag"
	"inkwell/internal/query"
	"inkwell/internal/source"
	"inkwell/internal/token"
)

func FromTokens(tokens []token.Token) []Token {
	out := make([]Token, len(tokens))
	for i, tok := range tokens {
		out[i] = Token{
			StartIndex: int(tok.Span.Start),
			EndIndex:   int(tok.Span.End),
			Type:       tok.Kind.String(),
		}
	}
	return out
}

func FromDiagnostics(diags []diag.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = Diagnostic{
			StartIndex: int(d.Primary.Start),
			EndIndex:   int(d.Primary.End),
			Message:    d.Message,
			Severity:   strings.ToLower(d.Severity.String()),
			Code:       d.Code.ID(),
		}
	}
	return out
}

func FromSpans(spans []source.Span) []Range {
	out := make([]Range, len(spans))
	for i, sp := range spans {
		out[i] = Range{StartIndex: int(sp.Start), EndIndex: int(sp.End)}
	}
	return out
}

func FromCompletions(items []query.CompletionItem) []CompletionItem {
	out := make([]CompletionItem, len(items))
	for i, it := range items {
		out[i] = CompletionItem{
			Label:      it.Label,
			Type:       it.Kind,
			Detail:     it.Detail,
			InsertText: it.InsertText,
		}
	}
	return out
}
