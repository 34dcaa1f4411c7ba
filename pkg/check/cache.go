package check

import "github.com/prosekit-labs/prosecheck/pkg/span"

// cacheKey addresses one tier's result for one paragraph.
type cacheKey struct {
	tier int
	para int
}

// resultCache holds per-tier check results. The tier an entry belongs to is
// its invalidation granularity: an edit drops single-paragraph entries for
// the edited paragraph, bounded entries in the window around it, and every
// document-tier entry. The cache is owned by a Checker and guarded by its
// pass mutex.
type resultCache struct {
	entries map[cacheKey][]span.Span
}

func newResultCache() *resultCache {
	return &resultCache{entries: make(map[cacheKey][]span.Span)}
}

func (rc *resultCache) get(tier, para int) ([]span.Span, bool) {
	spans, ok := rc.entries[cacheKey{tier, para}]
	return spans, ok
}

func (rc *resultCache) put(tier, para int, spans []span.Span) {
	rc.entries[cacheKey{tier, para}] = spans
}

func (rc *resultCache) drop(tier, para int) {
	delete(rc.entries, cacheKey{tier, para})
}

func (rc *resultCache) dropTier(tier int) {
	for key := range rc.entries {
		if key.tier == tier {
			delete(rc.entries, key)
		}
	}
}
