package check_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosekit-labs/prosecheck/pkg/check"
	"github.com/prosekit-labs/prosecheck/pkg/rule"
	"github.com/prosekit-labs/prosecheck/pkg/span"
	"github.com/prosekit-labs/prosecheck/pkg/tier"
)

// countingRule flags the word "bad" in the target paragraph and counts
// how many times it ran.
func countingRule(id string, minParas int, runs *atomic.Int64) rule.Rule {
	return rule.WrapRuleDef(rule.RuleDef{
		ID:            id,
		MinParagraphs: minParas,
		Severity:      rule.SeverityWarning,
		Check: func(ctx rule.Context, _ map[string]any) []span.Span {
			runs.Add(1)
			idx := strings.Index(ctx.TargetText(), "bad")
			if idx < 0 {
				return nil
			}
			return []span.Span{{Start: idx, Length: 3, Message: "flagged"}}
		},
	})
}

func testDoc() *rule.Document {
	return &rule.Document{Paragraphs: []string{
		"one bad word here",
		"nothing to see",
		"another bad one",
	}}
}

func TestCheckParagraph_MergesAcrossTiers(t *testing.T) {
	var runs0, runs1, runs2 atomic.Int64
	c := check.New(
		check.WithLookaround(2),
		check.WithRules([]rule.Rule{
			countingRule("t0", 0, &runs0),
			countingRule("t1", rule.ContextConfigured, &runs1),
			countingRule("t2", 2, &runs2),
		}),
	)

	spans, err := c.CheckParagraph(testDoc(), 0)
	require.NoError(t, err)

	// All three rules see paragraph 0; results arrive as one ordered list.
	require.Len(t, spans, 3)
	for _, sp := range spans {
		assert.Equal(t, 4, sp.Start)
		assert.Equal(t, 3, sp.Length)
	}
	assert.Equal(t, []string{"t0", "t1", "t2"}, []string{spans[0].RuleID, spans[1].RuleID, spans[2].RuleID},
		"exact ties keep deterministic tier-then-id order")
}

func TestCheckParagraph_CachesPerTier(t *testing.T) {
	var runs atomic.Int64
	c := check.New(
		check.WithLookaround(1),
		check.WithRules([]rule.Rule{countingRule("r", 0, &runs)}),
	)
	doc := testDoc()

	_, err := c.CheckParagraph(doc, 0)
	require.NoError(t, err)
	_, err = c.CheckParagraph(doc, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(1), runs.Load(), "second pass must be served from cache")

	_, err = c.CheckParagraph(doc, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), runs.Load(), "a different paragraph is a cache miss")
}

func TestInvalidate(t *testing.T) {
	var paraRuns, docRuns atomic.Int64
	c := check.New(
		check.WithLookaround(-1),
		check.WithRules([]rule.Rule{
			countingRule("para", 0, &paraRuns),
			countingRule("doc", rule.ContextDocument, &docRuns),
		}),
	)
	doc := testDoc()

	_, err := c.CheckParagraph(doc, 0)
	require.NoError(t, err)
	_, err = c.CheckParagraph(doc, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2), paraRuns.Load())
	require.Equal(t, int64(2), docRuns.Load())

	// Editing paragraph 2 invalidates its single-paragraph entry and every
	// document-tier entry, but paragraph 0's tier-0 entry stays valid.
	c.Invalidate(2)

	_, err = c.CheckParagraph(doc, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), paraRuns.Load(), "tier-0 result for paragraph 0 still cached")
	assert.Equal(t, int64(3), docRuns.Load(), "document tier re-checks after invalidation")

	_, err = c.CheckParagraph(doc, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), paraRuns.Load(), "edited paragraph re-checks")
}

func TestInvalidate_BoundedWindow(t *testing.T) {
	var runs atomic.Int64
	c := check.New(
		check.WithLookaround(2),
		check.WithRules([]rule.Rule{countingRule("win", 2, &runs)}),
	)
	doc := &rule.Document{Paragraphs: []string{
		"p0", "p1", "p2", "p3", "p4", "p5", "p6",
	}}

	for i := 0; i < doc.Len(); i++ {
		_, err := c.CheckParagraph(doc, i)
		require.NoError(t, err)
	}
	require.Equal(t, int64(7), runs.Load())

	// Editing paragraph 3 stales the bounded-tier entries whose window
	// of 2 reaches it, paragraphs 1 through 5. The ends of the document
	// sit outside that window and stay cached.
	c.Invalidate(3)

	for _, i := range []int{0, 6} {
		_, err := c.CheckParagraph(doc, i)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(7), runs.Load(), "paragraphs outside the window stay cached")

	for i := 1; i <= 5; i++ {
		_, err := c.CheckParagraph(doc, i)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(12), runs.Load(), "paragraphs inside the window re-check")
}

func TestCheckParagraph_RestoresEnabledState(t *testing.T) {
	var runs atomic.Int64
	c := check.New(
		check.WithLookaround(2),
		check.WithRules([]rule.Rule{
			countingRule("a", 0, &runs),
			countingRule("b", 3, &runs),
			countingRule("c", rule.ContextConfigured, &runs),
		}),
	)

	_, err := c.CheckParagraph(testDoc(), 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, c.EnabledRules(),
		"a finished pass leaves the engine fully re-enabled")
}

func TestCheckParagraph_OutOfRange(t *testing.T) {
	c := check.New(check.WithRules(nil))
	_, err := c.CheckParagraph(testDoc(), 3)
	require.Error(t, err)
	_, err = c.CheckParagraph(testDoc(), -1)
	require.Error(t, err)
}

func TestSetLookaround_RebuildsFromScratch(t *testing.T) {
	var runs atomic.Int64
	r := countingRule("r", rule.ContextDocument, &runs)
	c := check.New(check.WithLookaround(-1), check.WithRules([]rule.Rule{r}))

	require.Equal(t, tier.FullDocument, c.Table().TierOf("r"))

	c.SetLookaround(tier.ContextWholeDocument)
	assert.Equal(t, tier.FullDocumentOnly, c.Table().TierOf("r"),
		"whole-document-only configuration moves the rule to tier 3")

	doc := testDoc()
	_, err := c.CheckParagraph(doc, 0)
	require.NoError(t, err)
	before := runs.Load()

	c.SetLookaround(3)
	_, err = c.CheckParagraph(doc, 0)
	require.NoError(t, err)
	assert.Greater(t, runs.Load(), before, "rebuild drops cached results")
}

func TestTable_ReturnsCopy(t *testing.T) {
	var runs atomic.Int64
	c := check.New(check.WithRules([]rule.Rule{countingRule("r", 0, &runs)}))

	table := c.Table()
	delete(table[tier.CurrentParagraph].Rules, "r")

	assert.Equal(t, tier.CurrentParagraph, c.Table().TierOf("r"),
		"mutating a returned table must not touch the checker")
}

func TestWithDisabledRules(t *testing.T) {
	var runs atomic.Int64
	c := check.New(
		check.WithRules([]rule.Rule{countingRule("off", 0, &runs)}),
		check.WithDisabledRules("off"),
	)

	spans, err := c.CheckParagraph(testDoc(), 0)
	require.NoError(t, err)
	assert.Empty(t, spans)
	assert.Zero(t, runs.Load())
}

func TestCheckDocument_SeverityOverrides(t *testing.T) {
	var runs atomic.Int64
	c := check.New(
		check.WithRules([]rule.Rule{countingRule("r", 0, &runs)}),
		check.WithSeverityOverrides(map[string]rule.Severity{"r": rule.SeverityError}),
	)

	findings, err := c.CheckDocument(testDoc())
	require.NoError(t, err)
	require.Len(t, findings, 2)
	assert.Equal(t, 0, findings[0].Paragraph)
	assert.Equal(t, 2, findings[1].Paragraph)
	for _, f := range findings {
		assert.Equal(t, rule.SeverityError, f.Severity)
	}
}

func TestCheckAll(t *testing.T) {
	var runs atomic.Int64
	c := check.New(check.WithRules([]rule.Rule{countingRule("r", 0, &runs)}))

	docs := map[string]*rule.Document{
		"a.txt": testDoc(),
		"b.txt": {Paragraphs: []string{"clean text"}},
	}

	results, err := check.CheckAll(context.Background(), c, docs)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Len(t, results["a.txt"], 2)
	assert.Empty(t, results["b.txt"])
}
