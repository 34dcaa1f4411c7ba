package tier

import "fmt"

// Engine is the capability to toggle rules on the underlying rule engine.
// It is passed into activation explicitly so tests can substitute a fake
// that records calls; the activator never reaches for a singleton.
type Engine interface {
	EnableRule(id string)
	DisableRule(id string)
}

// Activate enables every rule in the requested tier on the engine and
// disables every rule belonging to any other tier. Repeated calls with the
// same arguments converge to the same enabled-set state.
//
// An out-of-range tier index is a caller bug that would otherwise silently
// disable the wrong rules; Activate returns an error without touching the
// engine.
func Activate(tier int, table Table, eng Engine) error {
	if tier < 0 || tier >= Count {
		return fmt.Errorf("tier: activate: index %d out of range [0,%d)", tier, Count)
	}
	for i := range table {
		for _, id := range table[i].RuleIDs() {
			if i == tier {
				eng.EnableRule(id)
			} else {
				eng.DisableRule(id)
			}
		}
	}
	return nil
}

// ReactivateAll enables every rule id across all tiers, restoring the
// engine to its default fully-enabled state after a restricted check pass.
// Idempotent.
func ReactivateAll(table Table, eng Engine) {
	for i := range table {
		for _, id := range table[i].RuleIDs() {
			eng.EnableRule(id)
		}
	}
}
