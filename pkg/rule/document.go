package rule

import "strings"

// Document is the unit of checking: an ordered sequence of paragraphs.
type Document struct {
	Paragraphs []string
}

// Len returns the number of paragraphs.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Paragraphs)
}

// SplitParagraphs builds a Document from raw text. Paragraphs are separated
// by one or more blank lines; line endings are normalized and surrounding
// whitespace per paragraph is trimmed. Empty input yields an empty document.
func SplitParagraphs(text string) *Document {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var paras []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		// Paragraphs flow as single lines; hard wraps inside a block are
		// soft breaks, not paragraph boundaries.
		paras = append(paras, strings.Join(strings.Fields(block), " "))
	}
	return &Document{Paragraphs: paras}
}

// Context is the slice of a document a rule is allowed to examine during one
// check pass. Paragraphs holds the window in document order, Target indexes
// the paragraph being checked within that window, and Base is the document
// index of Paragraphs[0].
type Context struct {
	Paragraphs []string
	Target     int
	Base       int
}

// TargetText returns the paragraph under check.
func (c Context) TargetText() string {
	if c.Target < 0 || c.Target >= len(c.Paragraphs) {
		return ""
	}
	return c.Paragraphs[c.Target]
}

// TargetIndex returns the document index of the paragraph under check.
func (c Context) TargetIndex() int {
	return c.Base + c.Target
}
