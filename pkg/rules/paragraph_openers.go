package rules

import (
	"fmt"

	"github.com/prosekit-labs/prosecheck/pkg/rule"
	"github.com/prosekit-labs/prosecheck/pkg/span"
)

// openerReach is how many preceding paragraphs the rule compares against.
const openerReach = 3

func init() {
	rule.Register(ParagraphOpeners)
}

// ParagraphOpeners flags a paragraph that opens with the same word as one of
// the paragraphs shortly before it.
var ParagraphOpeners = rule.RuleDef{
	ID:            "paragraph-openers",
	Name:          "repetition.paragraph_openers",
	Description:   "Nearby paragraphs open with the same word.",
	Severity:      rule.SeverityInfo,
	MinParagraphs: openerReach,
	Check:         checkParagraphOpeners,
	ConfigKeys:    []string{"min_word_length"},
}

func checkParagraphOpeners(ctx rule.Context, opts map[string]any) []span.Span {
	minLen := optInt(opts, "min_word_length", 3)

	words := splitWords(ctx.TargetText())
	if len(words) == 0 || words[0].len < minLen {
		return nil
	}
	opener := fold(words[0].text)

	for back := 1; back <= openerReach && ctx.Target-back >= 0; back++ {
		prev := splitWords(ctx.Paragraphs[ctx.Target-back])
		if len(prev) == 0 {
			continue
		}
		if fold(prev[0].text) == opener {
			return []span.Span{{
				Start:   words[0].off,
				Length:  words[0].len,
				Message: fmt.Sprintf("Paragraph opens with %q, like paragraph %d before it.", words[0].text, back),
			}}
		}
	}
	return nil
}
