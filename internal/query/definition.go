package query

import "inkwell/internal/analysis"

// Location is a jump target.
type Location struct {
	TargetIndex int
}

// Definition returns where the word at index was first declared.
func (s *Service) Definition(snap *analysis.Snapshot, index int) *Location {
	word, ok := s.WordAt(snap, index)
	if !ok {
		return nil
	}
	d, ok := snap.Decls.Lookup(word.Text)
	if !ok {
		return nil
	}
	return &Location{TargetIndex: int(d.Index)}
}
