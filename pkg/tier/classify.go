package tier

import "github.com/prosekit-labs/prosecheck/pkg/rule"

// Classify partitions the active text-level rules into the four cache tiers.
// Rules listed in disabled are excluded before classification; every
// remaining rule id lands in exactly one tier's set. lookaround is the
// configured number of paragraphs to check around an edit and may be
// negative (ContextUnbounded or ContextWholeDocument).
//
// Classification is a pure function: it does not touch the rule engine and
// holds no state beyond the returned table.
//
// The branch order below is deliberate and load-bearing. The bounded-window
// check comes before the positive-demand check, and the whole-document tier
// is selected only by an exact rule/-2 configuration/-2 match. Do not reorder
// or fold the branches: which rules share an invalidation granularity
// depends on this exact policy.
func Classify(rules []rule.Rule, disabled map[string]bool, lookaround int) Table {
	var t Table
	for i := range t {
		t[i].Rules = make(map[string]bool)
	}
	t[FullDocument].ContextSize = ContextUnbounded
	t[FullDocumentOnly].ContextSize = ContextWholeDocument

	for _, r := range rules {
		if r == nil || disabled[r.ID()] {
			continue
		}
		minPara := r.MinParagraphs()

		switch {
		case minPara == 0:
			t[CurrentParagraph].Rules[r.ID()] = true

		case lookaround >= 0:
			// Bounded window configured: the rule is folded into the
			// shared window; a larger own requirement widens it.
			t[BoundedContext].Rules[r.ID()] = true
			want := lookaround
			if minPara > want {
				want = minPara
			}
			if want > t[BoundedContext].ContextSize {
				t[BoundedContext].ContextSize = want
			}

		case minPara > 0:
			t[BoundedContext].Rules[r.ID()] = true
			if minPara > t[BoundedContext].ContextSize {
				t[BoundedContext].ContextSize = minPara
			}

		case minPara == rule.ContextDocument && lookaround == ContextWholeDocument:
			t[FullDocumentOnly].Rules[r.ID()] = true

		default:
			// Unbounded rule under a bounded-but-negative configuration.
			// Malformed demands below -2 also end up here.
			t[FullDocument].Rules[r.ID()] = true
		}
	}
	return t
}
