// Package rules contains the built-in text-level rules. Each rule registers
// itself from init(); importing the package for side effects makes the rules
// visible to the registry:
//
//	import _ "github.com/prosekit-labs/prosecheck/pkg/rules"
package rules

import (
	"unicode"

	"golang.org/x/text/cases"
)

// word is a token with its rune offset and length inside a paragraph.
type word struct {
	text string
	off  int
	len  int
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\'' || r == '-'
}

// splitWords tokenizes a paragraph into words with rune offsets.
func splitWords(s string) []word {
	runes := []rune(s)
	var out []word
	i := 0
	for i < len(runes) {
		for i < len(runes) && !isWordRune(runes[i]) {
			i++
		}
		start := i
		for i < len(runes) && isWordRune(runes[i]) {
			i++
		}
		if i > start {
			out = append(out, word{text: string(runes[start:i]), off: start, len: i - start})
		}
	}
	return out
}

// fold lower-cases a word using full Unicode case folding. A Caser is
// stateful and not safe to share across goroutines, so each call gets its
// own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// optInt reads an integer option, tolerating the types koanf produces.
func optInt(opts map[string]any, key string, def int) int {
	if opts == nil {
		return def
	}
	switch v := opts[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// optStrings reads a string-list option.
func optStrings(opts map[string]any, key string) []string {
	if opts == nil {
		return nil
	}
	switch v := opts[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
