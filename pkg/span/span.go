// Package span defines the error spans produced by rule execution and the
// canonical total order used to sort and merge results from multiple rules.
//
// Spans are value types: rules create them, the checker merges them, nothing
// mutates them afterwards. The package defines types that are shared across
// the system; rule implementations and the checker live in separate packages.
package span

// Span is a contiguous run of flagged text within a paragraph.
// Start and Length are rune offsets relative to the paragraph the span was
// produced for. A Length of zero marks a pure insertion point.
type Span struct {
	Start       int      // Non-negative offset of the first flagged rune
	Length      int      // Non-negative run length; 0 for insertion points
	RuleID      string   // Rule that produced the span
	Message     string   // Human-readable description of the finding
	Suggestions []string // Ordered replacement suggestions; may be empty
}

// End returns the exclusive end offset of the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// Overlaps reports whether o's start falls inside s's [Start, End) range or
// vice versa. Zero-length spans never overlap anything.
func (s Span) Overlaps(o Span) bool {
	if s.Length == 0 || o.Length == 0 {
		return false
	}
	return (o.Start >= s.Start && o.Start < s.End()) ||
		(s.Start >= o.Start && s.Start < o.End())
}
