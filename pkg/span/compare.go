package span

import (
	"fmt"
	"sort"
)

// Compare imposes the canonical order over two spans and returns -1, 0 or 1.
//
// Spans order primarily by ascending start offset. Because the primary key is
// the start offset, an overlapping pair always keeps the earlier-starting
// span first regardless of length. At equal start the shorter span precedes
// the longer one, so the more specific finding is surfaced first. At equal
// start and length the span carrying more suggestions precedes the one with
// fewer; an actionable finding beats a bare detection. Remaining ties are
// reported as equal and left to the stability of the caller's sort.
//
// Negative start or length values indicate a broken producer; Compare panics
// rather than ordering garbage.
func Compare(a, b Span) int {
	if a.Start < 0 || a.Length < 0 || b.Start < 0 || b.Length < 0 {
		panic(fmt.Sprintf("span: negative offset or length (a=%d+%d b=%d+%d)",
			a.Start, a.Length, b.Start, b.Length))
	}

	switch {
	case a.Start < b.Start:
		return -1
	case a.Start > b.Start:
		return 1
	}

	switch {
	case a.Length < b.Length:
		return -1
	case a.Length > b.Length:
		return 1
	}

	switch {
	case len(a.Suggestions) > len(b.Suggestions):
		return -1
	case len(a.Suggestions) < len(b.Suggestions):
		return 1
	}

	return 0
}

// Sort orders spans in place using Compare. The sort is stable, so exact
// ties keep their input order and sorting an already-sorted sequence is a
// no-op.
func Sort(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		return Compare(spans[i], spans[j]) < 0
	})
}

// Merge concatenates per-rule partial results into one display-ready
// sequence ordered by Compare. The input slices are not modified. Duplicate
// spans are kept; deduplication is the caller's concern.
func Merge(lists ...[]Span) []Span {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	if n == 0 {
		return nil
	}

	merged := make([]Span, 0, n)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	Sort(merged)
	return merged
}
