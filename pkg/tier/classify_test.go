package tier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosekit-labs/prosecheck/pkg/rule"
	"github.com/prosekit-labs/prosecheck/pkg/tier"
)

func defRule(id string, minParas int) rule.Rule {
	return rule.WrapRuleDef(rule.RuleDef{ID: id, MinParagraphs: minParas})
}

func TestClassify_CurrentParagraphRules(t *testing.T) {
	rules := []rule.Rule{defRule("a", 0), defRule("b", 0)}

	// Tier 0 placement and its zero context size hold for every
	// configuration value.
	for _, lookaround := range []int{-2, -1, 0, 3, 99} {
		table := tier.Classify(rules, nil, lookaround)
		assert.Equal(t, 0, table[tier.CurrentParagraph].ContextSize, "lookaround=%d", lookaround)
		assert.True(t, table[tier.CurrentParagraph].Contains("a"), "lookaround=%d", lookaround)
		assert.True(t, table[tier.CurrentParagraph].Contains("b"), "lookaround=%d", lookaround)
		assert.Empty(t, table[tier.BoundedContext].Rules)
		assert.Empty(t, table[tier.FullDocument].Rules)
		assert.Empty(t, table[tier.FullDocumentOnly].Rules)
	}
}

func TestClassify_BoundedWindow(t *testing.T) {
	tests := []struct {
		name       string
		rules      []rule.Rule
		lookaround int
		wantSize   int
	}{
		{
			name:       "small demand folded into configured window",
			rules:      []rule.Rule{defRule("r", 1)},
			lookaround: 5,
			wantSize:   5,
		},
		{
			name:       "larger demand widens the window",
			rules:      []rule.Rule{defRule("r", 7)},
			lookaround: 5,
			wantSize:   7,
		},
		{
			name:       "configured-context rule takes the window size",
			rules:      []rule.Rule{defRule("r", rule.ContextConfigured)},
			lookaround: 4,
			wantSize:   4,
		},
		{
			name:       "document rule shares the window under non-negative config",
			rules:      []rule.Rule{defRule("r", rule.ContextDocument)},
			lookaround: 3,
			wantSize:   3,
		},
		{
			name:       "positive demand with unbounded config",
			rules:      []rule.Rule{defRule("r", 4)},
			lookaround: -1,
			wantSize:   4,
		},
		{
			name:       "positive demand with whole-document config",
			rules:      []rule.Rule{defRule("r", 4)},
			lookaround: -2,
			wantSize:   4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := tier.Classify(tt.rules, nil, tt.lookaround)
			require.True(t, table[tier.BoundedContext].Contains("r"))
			assert.Equal(t, tt.wantSize, table[tier.BoundedContext].ContextSize)
		})
	}
}

func TestClassify_DocumentTiers(t *testing.T) {
	// A whole-document rule under whole-document-only configuration lands
	// in tier 3, never tier 2.
	table := tier.Classify([]rule.Rule{defRule("doc", rule.ContextDocument)}, nil, -2)
	assert.True(t, table[tier.FullDocumentOnly].Contains("doc"))
	assert.False(t, table[tier.FullDocument].Contains("doc"))

	// The same rule under an unbounded configuration lands in tier 2.
	table = tier.Classify([]rule.Rule{defRule("doc", rule.ContextDocument)}, nil, -1)
	assert.True(t, table[tier.FullDocument].Contains("doc"))

	// An unbounded rule under whole-document-only configuration stays in
	// tier 2: only an exact -2/-2 match selects tier 3.
	table = tier.Classify([]rule.Rule{defRule("var", rule.ContextConfigured)}, nil, -2)
	assert.True(t, table[tier.FullDocument].Contains("var"))

	// Sentinel sizes are fixed, never incremented.
	assert.Equal(t, -1, table[tier.FullDocument].ContextSize)
	assert.Equal(t, -2, table[tier.FullDocumentOnly].ContextSize)
}

func TestClassify_MalformedDemandTakesClosestBranch(t *testing.T) {
	// Below -2 behaves like a configured-context rule when a window is
	// configured, and like an unbounded rule otherwise.
	table := tier.Classify([]rule.Rule{defRule("odd", -7)}, nil, 3)
	assert.True(t, table[tier.BoundedContext].Contains("odd"))
	assert.Equal(t, 3, table[tier.BoundedContext].ContextSize)

	table = tier.Classify([]rule.Rule{defRule("odd", -7)}, nil, -2)
	assert.True(t, table[tier.FullDocument].Contains("odd"))
}

func TestClassify_EveryRuleInExactlyOneTier(t *testing.T) {
	rules := []rule.Rule{
		defRule("r0", 0),
		defRule("r1", 2),
		defRule("rc", rule.ContextConfigured),
		defRule("rd", rule.ContextDocument),
	}

	for _, lookaround := range []int{-2, -1, 0, 4} {
		table := tier.Classify(rules, nil, lookaround)
		for _, r := range rules {
			placements := 0
			for i := range table {
				if table[i].Contains(r.ID()) {
					placements++
				}
			}
			assert.Equal(t, 1, placements, "rule %s lookaround=%d", r.ID(), lookaround)
		}
	}
}

func TestClassify_DisabledRulesExcluded(t *testing.T) {
	rules := []rule.Rule{defRule("keep", 0), defRule("drop", 0)}
	table := tier.Classify(rules, map[string]bool{"drop": true}, 2)
	assert.True(t, table[tier.CurrentParagraph].Contains("keep"))
	assert.Equal(t, -1, table.TierOf("drop"))
}

func TestTableClone_Independent(t *testing.T) {
	rules := []rule.Rule{defRule("a", 0), defRule("b", rule.ContextConfigured)}
	table := tier.Classify(rules, nil, 2)

	clone := table.Clone()
	delete(clone[tier.CurrentParagraph].Rules, "a")
	clone[tier.BoundedContext].Rules["extra"] = true

	assert.True(t, table[tier.CurrentParagraph].Contains("a"))
	assert.False(t, table[tier.BoundedContext].Contains("extra"))
	assert.Equal(t, table[tier.BoundedContext].ContextSize, clone[tier.BoundedContext].ContextSize)
}

func TestClassify_MixedScenario(t *testing.T) {
	rules := []rule.Rule{
		defRule("R1", 0),
		defRule("R2", rule.ContextConfigured),
		defRule("R3", 3),
	}

	table := tier.Classify(rules, nil, 2)

	assert.Equal(t, []string{"R1"}, table[tier.CurrentParagraph].RuleIDs())
	assert.Equal(t, []string{"R2", "R3"}, table[tier.BoundedContext].RuleIDs())
	assert.Equal(t, 3, table[tier.BoundedContext].ContextSize, "window grows to the largest demand")
	assert.Empty(t, table[tier.FullDocument].Rules)
	assert.Empty(t, table[tier.FullDocumentOnly].Rules)
}
