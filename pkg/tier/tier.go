// Package tier implements the incremental re-check scheduling core of the
// checking engine. Rules are partitioned into four fixed cache tiers by their
// paragraph-context demands; each tier owns a context size and a rule-id set,
// and a check pass activates exactly one tier on the rule engine at a time.
// Rules in the same tier share a cache invalidation granularity, so the
// partitioning policy must stay stable: downstream caching depends on which
// rules land together.
package tier

import "sort"

// Fixed tier indices.
const (
	// CurrentParagraph holds rules that only ever need the paragraph
	// being checked. Its context size is always 0.
	CurrentParagraph = 0
	// BoundedContext holds rules checked over a bounded paragraph window.
	// Its context size grows to the largest demand among its members.
	BoundedContext = 1
	// FullDocument holds whole-document rules under a configuration that
	// is not whole-document-only. Sentinel context size -1.
	FullDocument = 2
	// FullDocumentOnly holds whole-document rules when configuration
	// itself requests whole-document-only checking. Sentinel context
	// size -2.
	FullDocumentOnly = 3

	// Count is the number of tiers.
	Count = 4
)

// Sentinel context sizes for the document tiers.
const (
	ContextUnbounded     = -1
	ContextWholeDocument = -2
)

// Slot is one tier's share of the table: the context size to use and the
// ids of the rules re-checked at that granularity.
type Slot struct {
	ContextSize int
	Rules       map[string]bool
}

// Contains reports whether the slot holds the given rule id.
func (s Slot) Contains(id string) bool {
	return s.Rules[id]
}

// RuleIDs returns the slot's rule ids in sorted order.
func (s Slot) RuleIDs() []string {
	ids := make([]string, 0, len(s.Rules))
	for id := range s.Rules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Table maps each tier to its context size and rule membership. A table is
// built once per configuration/rule-set combination and never mutated
// afterwards; when rules or configuration change it is rebuilt from scratch.
type Table [Count]Slot

// AllRuleIDs returns every rule id across all tiers, sorted.
func (t Table) AllRuleIDs() []string {
	var ids []string
	for i := range t {
		ids = append(ids, t[i].RuleIDs()...)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy of the table. Holders of a built table hand
// out clones, so callers cannot reach the live rule sets.
func (t Table) Clone() Table {
	var out Table
	for i := range t {
		out[i].ContextSize = t[i].ContextSize
		out[i].Rules = make(map[string]bool, len(t[i].Rules))
		for id, v := range t[i].Rules {
			out[i].Rules[id] = v
		}
	}
	return out
}

// TierOf returns the tier index holding the given rule id, or -1 if the id
// is not in the table.
func (t Table) TierOf(id string) int {
	for i := range t {
		if t[i].Contains(id) {
			return i
		}
	}
	return -1
}
