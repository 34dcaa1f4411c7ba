package rules

import (
	"fmt"

	"github.com/prosekit-labs/prosecheck/pkg/rule"
	"github.com/prosekit-labs/prosecheck/pkg/span"
)

func init() {
	rule.Register(DoubledWord)
}

// DoubledWord flags a word immediately repeating itself, e.g. "the the".
// Needs nothing beyond the current paragraph.
var DoubledWord = rule.RuleDef{
	ID:            "doubled-word",
	Name:          "repetition.doubled_word",
	Description:   "A word appears twice in a row.",
	Severity:      rule.SeverityError,
	MinParagraphs: 0,
	Check:         checkDoubledWord,
	ConfigKeys:    []string{"ignore_words"},
}

func checkDoubledWord(ctx rule.Context, opts map[string]any) []span.Span {
	ignore := make(map[string]bool)
	for _, w := range optStrings(opts, "ignore_words") {
		ignore[fold(w)] = true
	}

	words := splitWords(ctx.TargetText())
	var spans []span.Span
	for i := 1; i < len(words); i++ {
		lower := fold(words[i].text)
		if lower != fold(words[i-1].text) || ignore[lower] {
			continue
		}
		spans = append(spans, span.Span{
			Start:       words[i-1].off,
			Length:      words[i].off + words[i].len - words[i-1].off,
			Message:     fmt.Sprintf("Possible typo: %q is repeated.", words[i].text),
			Suggestions: []string{words[i-1].text},
		})
	}
	return spans
}
