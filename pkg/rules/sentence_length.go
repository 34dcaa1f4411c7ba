package rules

import (
	"fmt"

	"github.com/prosekit-labs/prosecheck/pkg/rule"
	"github.com/prosekit-labs/prosecheck/pkg/span"
)

func init() {
	rule.Register(MeanSentenceLength)
}

// MeanSentenceLength flags the longest sentence of the target paragraph when
// the document's mean sentence length exceeds the configured bound. The
// verdict depends on every paragraph, so the rule needs the whole document.
var MeanSentenceLength = rule.RuleDef{
	ID:            "mean-sentence-length",
	Name:          "readability.mean_sentence_length",
	Description:   "The document's sentences run long on average.",
	Severity:      rule.SeverityHint,
	MinParagraphs: rule.ContextDocument,
	Check:         checkMeanSentenceLength,
	ConfigKeys:    []string{"max_mean_words"},
}

// sentence is a sentence's word count plus its rune extent in a paragraph.
type sentence struct {
	words int
	off   int
	len   int
}

// splitSentences cuts a paragraph at sentence-ending punctuation.
func splitSentences(s string) []sentence {
	runes := []rune(s)
	var out []sentence
	start := 0
	for i := 0; i <= len(runes); i++ {
		atEnd := i == len(runes)
		if !atEnd && runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		end := i
		if !atEnd {
			end = i + 1
		}
		text := string(runes[start:end])
		if n := len(splitWords(text)); n > 0 {
			out = append(out, sentence{words: n, off: start, len: end - start})
		}
		start = end
	}
	return out
}

func checkMeanSentenceLength(ctx rule.Context, opts map[string]any) []span.Span {
	maxMean := optInt(opts, "max_mean_words", 25)

	var totalWords, totalSentences int
	for _, para := range ctx.Paragraphs {
		for _, s := range splitSentences(para) {
			totalWords += s.words
			totalSentences++
		}
	}
	if totalSentences == 0 {
		return nil
	}
	mean := float64(totalWords) / float64(totalSentences)
	if mean <= float64(maxMean) {
		return nil
	}

	var longest *sentence
	for _, s := range splitSentences(ctx.TargetText()) {
		if longest == nil || s.words > longest.words {
			longest = &s
		}
	}
	if longest == nil || float64(longest.words) <= mean {
		return nil
	}
	return []span.Span{{
		Start:   longest.off,
		Length:  longest.len,
		Message: fmt.Sprintf("Sentences average %.1f words (bound %d); this one has %d.", mean, maxMean, longest.words),
	}}
}
