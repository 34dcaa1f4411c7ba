// Package check drives incremental check passes over documents. A Checker
// owns the mutable rule-enable state of the engine, partitions its rules
// into cache tiers, runs one tier at a time over the paragraph context that
// tier needs, caches per-tier results, and merges the produced spans into
// one ordered sequence.
package check

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/prosekit-labs/prosecheck/pkg/rule"
	"github.com/prosekit-labs/prosecheck/pkg/span"
	"github.com/prosekit-labs/prosecheck/pkg/tier"
)

// DefaultLookaround is the number of paragraphs checked around an edit when
// configuration does not say otherwise.
const DefaultLookaround = 5

// Finding is one span resolved against a paragraph and a severity.
type Finding struct {
	Paragraph int           `json:"paragraph"`
	Severity  rule.Severity `json:"severity"`
	Span      span.Span     `json:"span"`
}

// Checker schedules re-checks over a document. It implements tier.Engine:
// activation toggles the checker's own enabled set, and only rules in the
// enabled set run during a pass. All passes on one Checker are serialized
// internally, which gives callers the single-writer discipline activation
// requires; use one Checker per concurrently-checked document.
type Checker struct {
	mu sync.Mutex

	logger     *slog.Logger
	lookaround int
	rules      []rule.Rule
	byID       map[string]rule.Rule
	disabled   map[string]bool
	severity   map[string]rule.Severity
	ruleOpts   map[string]map[string]any

	enabled map[string]bool
	table   tier.Table
	cache   *resultCache
}

// Option configures a Checker.
type Option func(*Checker)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Checker) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLookaround sets the configured number of paragraphs to check around
// an edit. Negative sentinels are honored: -1 requests unbounded context,
// -2 whole-document-only checking.
func WithLookaround(n int) Option {
	return func(c *Checker) { c.lookaround = n }
}

// WithRules replaces the rule set. The default is every registered rule.
func WithRules(rules []rule.Rule) Option {
	return func(c *Checker) { c.rules = rules }
}

// WithDisabledRules excludes rules by id before classification.
func WithDisabledRules(ids ...string) Option {
	return func(c *Checker) {
		for _, id := range ids {
			c.disabled[id] = true
		}
	}
}

// WithSeverityOverrides changes the severity findings are reported with.
func WithSeverityOverrides(overrides map[string]rule.Severity) Option {
	return func(c *Checker) {
		for id, sev := range overrides {
			c.severity[id] = sev
		}
	}
}

// WithRuleOptions sets per-rule options passed to Check, keyed by rule id.
func WithRuleOptions(opts map[string]map[string]any) Option {
	return func(c *Checker) {
		for id, o := range opts {
			c.ruleOpts[id] = o
		}
	}
}

// New creates a Checker and builds its tier table.
func New(opts ...Option) *Checker {
	c := &Checker{
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		lookaround: DefaultLookaround,
		disabled:   make(map[string]bool),
		severity:   make(map[string]rule.Severity),
		ruleOpts:   make(map[string]map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rules == nil {
		c.rules = rule.All()
	}
	c.rebuild()
	return c
}

// EnableRule marks a rule runnable in the current pass. Part of the
// tier.Engine capability; activation calls it during a pass.
func (c *Checker) EnableRule(id string) { c.enabled[id] = true }

// DisableRule removes a rule from the current pass.
func (c *Checker) DisableRule(id string) { c.enabled[id] = false }

// rebuild reclassifies rules and drops all cached results. Callers hold mu
// (or, from New, have exclusive access).
func (c *Checker) rebuild() {
	c.byID = make(map[string]rule.Rule, len(c.rules))
	for _, r := range c.rules {
		if r != nil {
			c.byID[r.ID()] = r
		}
	}
	c.table = tier.Classify(c.rules, c.disabled, c.lookaround)
	c.cache = newResultCache()
	c.enabled = make(map[string]bool)
	tier.ReactivateAll(c.table, c)

	c.logger.Debug("tier table rebuilt",
		"lookaround", c.lookaround,
		"tier0", len(c.table[tier.CurrentParagraph].Rules),
		"tier1", len(c.table[tier.BoundedContext].Rules),
		"tier1_context", c.table[tier.BoundedContext].ContextSize,
		"tier2", len(c.table[tier.FullDocument].Rules),
		"tier3", len(c.table[tier.FullDocumentOnly].Rules),
	)
}

// SetLookaround changes the configured window and rebuilds the tier table
// from scratch.
func (c *Checker) SetLookaround(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n == c.lookaround {
		return
	}
	c.lookaround = n
	c.rebuild()
}

// SetRules replaces the rule set and rebuilds the tier table from scratch.
func (c *Checker) SetRules(rules []rule.Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = rules
	c.rebuild()
}

// Table returns a deep copy of the current tier table. Mutating the copy
// does not affect the checker.
func (c *Checker) Table() tier.Table {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.table.Clone()
}

// EnabledRules returns the ids currently enabled on the engine, sorted.
// Between passes this is every classified rule.
func (c *Checker) EnabledRules() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []string
	for _, id := range c.table.AllRuleIDs() {
		if c.enabled[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// CheckParagraph runs all four tiers over the given paragraph, reusing
// cached tier results where still valid, and returns the merged, ordered
// span sequence. Spans are relative to the paragraph. The engine is left
// fully re-enabled when the pass finishes.
func (c *Checker) CheckParagraph(doc *rule.Document, index int) ([]span.Span, error) {
	if index < 0 || index >= doc.Len() {
		return nil, fmt.Errorf("check: paragraph %d out of range [0,%d)", index, doc.Len())
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lists := make([][]span.Span, 0, tier.Count)
	for pass := 0; pass < tier.Count; pass++ {
		slot := c.table[pass]
		if len(slot.Rules) == 0 {
			continue
		}
		if spans, ok := c.cache.get(pass, index); ok {
			lists = append(lists, spans)
			continue
		}

		if err := tier.Activate(pass, c.table, c); err != nil {
			tier.ReactivateAll(c.table, c)
			return nil, err
		}
		spans := c.runTier(slot, doc, index)
		c.cache.put(pass, index, spans)
		lists = append(lists, spans)
	}
	tier.ReactivateAll(c.table, c)

	return span.Merge(lists...), nil
}

// runTier executes the enabled rules of one tier over the context slice
// that tier owns. Callers hold mu and have activated the tier.
func (c *Checker) runTier(slot tier.Slot, doc *rule.Document, index int) []span.Span {
	ctx := contextFor(doc, index, slot.ContextSize)

	var spans []span.Span
	for _, id := range slot.RuleIDs() {
		if !c.enabled[id] {
			continue
		}
		r := c.byID[id]
		if r == nil {
			continue
		}
		for _, sp := range r.Check(ctx, c.ruleOpts[id]) {
			if sp.RuleID == "" {
				sp.RuleID = id
			}
			spans = append(spans, sp)
		}
	}
	return spans
}

// contextFor slices the paragraph window a tier is entitled to. A negative
// size means the whole document.
func contextFor(doc *rule.Document, index, size int) rule.Context {
	if size < 0 {
		return rule.Context{Paragraphs: doc.Paragraphs, Target: index, Base: 0}
	}
	lo := index - size
	if lo < 0 {
		lo = 0
	}
	hi := index + size + 1
	if hi > doc.Len() {
		hi = doc.Len()
	}
	return rule.Context{Paragraphs: doc.Paragraphs[lo:hi], Target: index - lo, Base: lo}
}

// CheckDocument checks every paragraph in order and resolves findings with
// their severities.
func (c *Checker) CheckDocument(doc *rule.Document) ([]Finding, error) {
	var findings []Finding
	for i := 0; i < doc.Len(); i++ {
		spans, err := c.CheckParagraph(doc, i)
		if err != nil {
			return nil, err
		}
		for _, sp := range spans {
			findings = append(findings, Finding{
				Paragraph: i,
				Severity:  c.severityFor(sp.RuleID),
				Span:      sp,
			})
		}
	}
	return findings, nil
}

// Invalidate drops cached results made stale by an edit to the given
// paragraph: the single-paragraph tier forgets that paragraph, the bounded
// tier forgets its window around it, and the document tiers forget
// everything.
func (c *Checker) Invalidate(index int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.drop(tier.CurrentParagraph, index)
	size := c.table[tier.BoundedContext].ContextSize
	for p := index - size; p <= index+size; p++ {
		c.cache.drop(tier.BoundedContext, p)
	}
	c.cache.dropTier(tier.FullDocument)
	c.cache.dropTier(tier.FullDocumentOnly)
}

func (c *Checker) severityFor(ruleID string) rule.Severity {
	c.mu.Lock()
	defer c.mu.Unlock()
	if sev, ok := c.severity[ruleID]; ok {
		return sev
	}
	if r, ok := c.byID[ruleID]; ok {
		return r.DefaultSeverity()
	}
	return rule.SeverityWarning
}
