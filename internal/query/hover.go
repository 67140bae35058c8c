package query

import (
	"fmt"

	"inkwell/internal/analysis"
	"inkwell/internal/decl"
)

// HoverInfo is the documentation shown for the word under the cursor.
type HoverInfo struct {
	Content string
}

var defaultBuiltins = map[string]string{
	"console":  "console\n\nProvides access to the debugging console (console.log, console.error, ...).",
	"window":   "window\n\nThe global object of the browser window.",
	"document": "document\n\nThe DOM document loaded in the window.",
	"Math":     "Math\n\nBuilt-in object with mathematical constants and functions.",
	"JSON":     "JSON\n\nParses and serializes JavaScript Object Notation.",
	"Promise":  "Promise<T>\n\nThe eventual completion or failure of an asynchronous operation.",
	"fetch":    "fetch(input, init?): Promise<Response>\n\nStarts fetching a resource from the network.",
}

var kindBlurb = map[decl.Kind]string{
	decl.KindConst:    "Constant",
	decl.KindLet:      "Block-scoped variable",
	decl.KindVar:      "Variable",
	decl.KindFunction: "Function",
	decl.KindClass:    "Class",
}

// Hover looks up built-in docs first, then declarations. Returns nil when
// neither knows the word.
func (s *Service) Hover(snap *analysis.Snapshot, index int) *HoverInfo {
	word, ok := s.WordAt(snap, index)
	if !ok {
		return nil
	}
	if doc, ok := s.builtins[word.Text]; ok {
		return &HoverInfo{Content: doc}
	}
	d, ok := snap.Decls.Lookup(word.Text)
	if !ok {
		return nil
	}
	return &HoverInfo{Content: declDoc(snap, d)}
}

func declDoc(snap *analysis.Snapshot, d decl.Declaration) string {
	signature := d.Kind.String() + " " + d.Name
	if d.Kind == decl.KindFunction {
		signature += "(...)"
	}
	pos := snap.Position(d.Index)
	return fmt.Sprintf("%s\n\n%s declared at line %d, column %d.", signature, kindBlurb[d.Kind], pos.Line, pos.Col)
}
