// Package query answers position queries against an analysis.Snapshot.
// Every method is a pure function of its arguments; nothing here mutates
// the snapshot. No-match results are nil or empty, never errors.
package query

import (
	"maps"
)

// Options customises a Service.
type Options struct {
	// Builtins adds or overrides hover documentation for built-in names.
	Builtins map[string]string
}

// Service holds the static tables queries consult.
type Service struct {
	builtins map[string]string
}

// New returns a Service whose built-in docs are the defaults merged with
// opts.Builtins.
func New(opts Options) *Service {
	builtins := maps.Clone(defaultBuiltins)
	maps.Copy(builtins, opts.Builtins)
	return &Service{builtins: builtins}
}

// Default returns a Service with the built-in tables only.
func Default() *Service {
	return New(Options{})
}

func clampIndex(index, n int) int {
	if index < 0 {
		return 0
	}
	if index > n {
		return n
	}
	return index
}
