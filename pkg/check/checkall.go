package check

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/prosekit-labs/prosecheck/pkg/rule"
)

// clone returns an independent Checker with the same configuration and a
// cold cache. Tier table construction is pure, so clones can be built and
// used on any goroutine.
func (c *Checker) clone() *Checker {
	c.mu.Lock()
	defer c.mu.Unlock()

	nc := &Checker{
		logger:     c.logger,
		lookaround: c.lookaround,
		rules:      c.rules,
		disabled:   make(map[string]bool, len(c.disabled)),
		severity:   make(map[string]rule.Severity, len(c.severity)),
		ruleOpts:   make(map[string]map[string]any, len(c.ruleOpts)),
	}
	for id := range c.disabled {
		nc.disabled[id] = c.disabled[id]
	}
	for id, sev := range c.severity {
		nc.severity[id] = sev
	}
	for id, o := range c.ruleOpts {
		nc.ruleOpts[id] = o
	}
	nc.rebuild()
	return nc
}

// CheckAll checks several documents concurrently, one cloned Checker per
// document so each keeps the single-writer activation discipline to itself.
// Results are keyed like docs. The first rule-engine error cancels the rest.
func CheckAll(ctx context.Context, base *Checker, docs map[string]*rule.Document) (map[string][]Finding, error) {
	eg, egctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(map[string][]Finding, len(docs))

	for name, doc := range docs {
		name, doc := name, doc
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			findings, err := base.clone().CheckDocument(doc)
			if err != nil {
				return err
			}
			mu.Lock()
			results[name] = findings
			mu.Unlock()
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
