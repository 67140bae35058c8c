// Package decl builds the flat declaration table used by hover, definition
// and completions. Scopes are not modelled: one entry per name, first
// declaration in text order wins.
package decl

import (
	"inkwell/internal/token"
)

// Declaration is the first binding site of a name.
type Declaration struct {
	Name  string
	Index uint32
	Kind  Kind
}

// Index is immutable once built.
type Index struct {
	byName map[string]int
	order  []Declaration
}

// Build scans tokens once. A declaring keyword (const, let, var, function,
// class) binds the next non-comment token when that token is a variable or
// function identifier.
func Build(tokens []token.Token, text string) *Index {
	idx := &Index{byName: make(map[string]int)}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Kind != token.Keyword {
			continue
		}
		kind, ok := KindOf(tok.Text(text))
		if !ok {
			continue
		}
		j := i + 1
		for j < len(tokens) && tokens[j].Kind == token.Comment {
			j++
		}
		if j >= len(tokens) {
			break
		}
		target := tokens[j]
		if target.Kind != token.Variable && target.Kind != token.Function {
			continue
		}
		name := target.Text(text)
		if _, exists := idx.byName[name]; exists {
			continue
		}
		idx.byName[name] = len(idx.order)
		idx.order = append(idx.order, Declaration{
			Name:  name,
			Index: target.Span.Start,
			Kind:  kind,
		})
	}
	return idx
}

// Lookup returns the declaration recorded for name.
func (idx *Index) Lookup(name string) (Declaration, bool) {
	if idx == nil {
		return Declaration{}, false
	}
	i, ok := idx.byName[name]
	if !ok {
		return Declaration{}, false
	}
	return idx.order[i], true
}

// All returns declarations in text order. The slice is a copy.
func (idx *Index) All() []Declaration {
	if idx == nil {
		return nil
	}
	out := make([]Declaration, len(idx.order))
	copy(out, idx.order)
	return out
}

func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.order)
}
