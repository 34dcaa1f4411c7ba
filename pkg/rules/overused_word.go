package rules

import (
	"fmt"

	"github.com/prosekit-labs/prosecheck/pkg/rule"
	"github.com/prosekit-labs/prosecheck/pkg/span"
)

func init() {
	rule.Register(OverusedWord)
}

// stopwords are too common to count as style repetition.
var stopwords = map[string]bool{
	"that": true, "this": true, "with": true, "from": true, "have": true,
	"will": true, "they": true, "their": true, "there": true, "were": true,
	"been": true, "which": true, "would": true, "about": true, "when": true,
}

// WordCounter reports how often a word has been used beyond the rule's
// own context window, typically across every document of the current run.
// *wordfreq.Store satisfies it.
type WordCounter interface {
	Count(word string) (int, error)
}

// CounterOption is the rule-option key under which a WordCounter is
// supplied to the overused-word rule.
const CounterOption = "counter"

// OverusedWord flags words leaned on too often within the configured
// look-around window. The window size comes from configuration, so the
// rule's context demand is ContextConfigured. When a WordCounter is
// supplied under the "counter" option the rule also consults it, so
// usage outside the window still counts.
var OverusedWord = rule.RuleDef{
	ID:            "overused-word",
	Name:          "style.overused_word",
	Description:   "A word is used unusually often in the surrounding text.",
	Severity:      rule.SeverityInfo,
	MinParagraphs: rule.ContextConfigured,
	Check:         checkOverusedWord,
	ConfigKeys:    []string{"max_occurrences", "min_length"},
}

func checkOverusedWord(ctx rule.Context, opts map[string]any) []span.Span {
	maxOcc := optInt(opts, "max_occurrences", 4)
	minLen := optInt(opts, "min_length", 4)
	counter, _ := opts[CounterOption].(WordCounter)

	counts := make(map[string]int)
	for _, para := range ctx.Paragraphs {
		for _, w := range splitWords(para) {
			lower := fold(w.text)
			if w.len < minLen || stopwords[lower] {
				continue
			}
			counts[lower]++
		}
	}

	var spans []span.Span
	for _, w := range splitWords(ctx.TargetText()) {
		lower := fold(w.text)
		if w.len < minLen || stopwords[lower] {
			continue
		}
		n := counts[lower]
		if counter != nil {
			// Counter totals include the window, so take the larger
			// figure rather than summing the two.
			if total, err := counter.Count(lower); err == nil && total > n {
				n = total
			}
		}
		if n <= maxOcc {
			continue
		}
		spans = append(spans, span.Span{
			Start:   w.off,
			Length:  w.len,
			Message: fmt.Sprintf("%q appears %d times in the surrounding text.", w.text, n),
		})
	}
	return spans
}
