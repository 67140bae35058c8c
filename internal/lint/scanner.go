package lint

import (
	"sort"
	"strings"

	"inkwell/internal/diag"
	"inkwell/internal/source"
)

// Scanner applies Rules in order. Max caps the number of diagnostics
// returned by Scan; Max <= 0 means no limit.
type Scanner struct {
	Rules []Rule
	Max   int
}

// NewScanner builds a scanner over the default rules followed by extra.
func NewScanner(max int, extra ...Rule) *Scanner {
	rules := DefaultRules()
	rules = append(rules, extra...)
	return &Scanner{Rules: rules, Max: max}
}

type hit struct {
	rule int
	span source.Span
}

// Scan returns diagnostics ordered by start offset, ties broken by rule order.
func (s *Scanner) Scan(text string) []diag.Diagnostic {
	bag := diag.NewBag(s.Max)
	s.ScanInto(text, diag.BagReporter{Bag: bag})
	if bag.Len() == 0 {
		return nil
	}
	out := make([]diag.Diagnostic, bag.Len())
	copy(out, bag.Items())
	return out
}

// ScanInto reports every match to rep in the same order Scan returns them.
func (s *Scanner) ScanInto(text string, rep diag.Reporter) {
	if s == nil || rep == nil || text == "" {
		return
	}
	var hits []hit
	for i, rule := range s.Rules {
		if rule.Pattern == "" {
			continue
		}
		hits = appendMatches(hits, i, text, rule.Pattern)
	}
	// стабильная сортировка сохраняет порядок правил при равном start
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].span.Start < hits[j].span.Start
	})
	for _, h := range hits {
		rule := s.Rules[h.rule]
		rep.Report(rule.Code, rule.Severity, h.span, rule.Message)
	}
}

func appendMatches(dst []hit, rule int, text, pattern string) []hit {
	limit := source.Len(text)
	pos := 0
	for {
		i := strings.Index(text[pos:], pattern)
		if i < 0 {
			return dst
		}
		start := pos + i
		end := start + len(pattern)
		dst = append(dst, hit{
			rule: rule,
			span: source.Span{
				Start: source.Offset(start, limit),
				End:   source.Offset(end, limit),
			},
		})
		pos = end
	}
}
