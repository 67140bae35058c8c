package query

import (
	"strings"

	"golang.org/x/text/cases"

	"inkwell/internal/analysis"
	"inkwell/internal/token"
)

// CompletionItem is one candidate in the completion list.
type CompletionItem struct {
	Label string
	// Kind is "keyword", "snippet" or the declaring keyword of a name.
	Kind       string
	Detail     string
	InsertText string
}

const (
	KindKeyword = "keyword"
	KindSnippet = "snippet"
)

// snippets use ${n:placeholder} markers; equal n means linked edits.
var snippets = []CompletionItem{
	{Label: "for", Kind: KindSnippet, Detail: "for loop",
		InsertText: "for (let ${1:i} = 0; ${1:i} < ${2:array}.length; ${1:i}++) {\n\t${3}\n}"},
	{Label: "if", Kind: KindSnippet, Detail: "if statement",
		InsertText: "if (${1:condition}) {\n\t${2}\n}"},
	{Label: "function", Kind: KindSnippet, Detail: "function declaration",
		InsertText: "function ${1:name}(${2:params}) {\n\t${3}\n}"},
	{Label: "log", Kind: KindSnippet, Detail: "console.log call",
		InsertText: "console.log(${1});"},
	{Label: "class", Kind: KindSnippet, Detail: "class declaration",
		InsertText: "class ${1:Name} {\n\tconstructor(${2}) {\n\t\t${3}\n\t}\n}"},
	{Label: "while", Kind: KindSnippet, Detail: "while loop",
		InsertText: "while (${1:condition}) {\n\t${2}\n}"},
	{Label: "try", Kind: KindSnippet, Detail: "try/catch block",
		InsertText: "try {\n\t${1}\n} catch (${2:error}) {\n\t${3}\n}"},
}

// Prefix returns the word run that ends exactly at index.
func Prefix(text string, index int) string {
	end := clampIndex(index, len(text))
	start := end
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	return text[start:end]
}

// Completions lists keywords, declared names and snippets, in that order.
// A non-empty prefix keeps candidates whose label starts with it, ignoring
// case; snippets also match on their insert text.
func (s *Service) Completions(snap *analysis.Snapshot, index int) []CompletionItem {
	decls := snap.Decls.All()
	keywords := token.Keywords()
	all := make([]CompletionItem, 0, len(keywords)+len(decls)+len(snippets))
	for _, kw := range keywords {
		all = append(all, CompletionItem{Label: kw, Kind: KindKeyword})
	}
	for _, d := range decls {
		kind := d.Kind.String()
		all = append(all, CompletionItem{Label: d.Name, Kind: kind, Detail: kind})
	}
	all = append(all, snippets...)

	prefix := Prefix(snap.Text(), index)
	if prefix == "" {
		return all
	}

	fold := cases.Fold()
	want := fold.String(prefix)
	matches := func(s string) bool {
		return strings.HasPrefix(fold.String(s), want)
	}
	out := all[:0]
	for _, item := range all {
		if matches(item.Label) || (item.Kind == KindSnippet && matches(item.InsertText)) {
			out = append(out, item)
		}
	}
	return out
}
