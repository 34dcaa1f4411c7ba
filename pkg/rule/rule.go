// Package rule defines the text-level rule model for the prosecheck engine.
// Rules are data-driven and stateless: all context comes in via the Check
// function parameters. Rule implementations register themselves from init()
// functions in their own packages; the checker discovers them through the
// registry.
package rule

import "github.com/prosekit-labs/prosecheck/pkg/span"

// Severity indicates the importance of a finding.
type Severity int

// Severity levels for findings.
const (
	// SeverityError indicates a critical issue that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
	// SeverityHint indicates a suggestion for improvement.
	SeverityHint
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// ParseSeverity converts a config string to a Severity.
// Unknown values map to SeverityWarning.
func ParseSeverity(s string) Severity {
	switch s {
	case "error":
		return SeverityError
	case "info":
		return SeverityInfo
	case "hint":
		return SeverityHint
	default:
		return SeverityWarning
	}
}

// MinParagraphs sentinels. A non-negative value is a literal paragraph count.
const (
	// ContextConfigured marks a rule whose context is bounded by the
	// configured look-around window rather than a fixed paragraph count.
	ContextConfigured = -1
	// ContextDocument marks a rule that needs the entire document.
	ContextDocument = -2
)

// Rule is the interface all text-level rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g. "doubled-word".
	ID() string

	// Name returns the human-readable name, e.g. "repetition.doubled_word".
	Name() string

	// Description returns a human-readable description.
	Description() string

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() Severity

	// MinParagraphs returns the rule's paragraph-context contract:
	// 0 means the current paragraph alone suffices, a positive n means n
	// surrounding paragraphs are needed, ContextConfigured means the size
	// comes from configuration, ContextDocument means the whole document.
	MinParagraphs() int

	// ConfigKeys returns configuration keys this rule accepts.
	ConfigKeys() []string

	// Check analyzes the target paragraph within its context window and
	// returns spans relative to the target paragraph.
	Check(ctx Context, opts map[string]any) []span.Span
}

// CheckFunc analyzes a paragraph context and returns spans relative to the
// target paragraph. The opts parameter carries rule-specific options from
// configuration.
type CheckFunc func(ctx Context, opts map[string]any) []span.Span

// RuleDef is a data-driven rule definition. Rules are stateless - all
// context comes via the Check function parameters.
type RuleDef struct {
	ID            string    // Unique identifier, e.g. "doubled-word"
	Name          string    // Human-readable name, e.g. "repetition.doubled_word"
	Description   string    // Human-readable description
	Severity      Severity  // Default severity
	MinParagraphs int       // Paragraph-context contract (see sentinels above)
	Check         CheckFunc // The check function
	ConfigKeys    []string  // Configuration keys this rule accepts
}

// wrappedRuleDef wraps a RuleDef to implement Rule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the Rule interface.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                { return w.def.ID }
func (w *wrappedRuleDef) Name() string              { return w.def.Name }
func (w *wrappedRuleDef) Description() string       { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() Severity { return w.def.Severity }
func (w *wrappedRuleDef) MinParagraphs() int        { return w.def.MinParagraphs }
func (w *wrappedRuleDef) ConfigKeys() []string      { return w.def.ConfigKeys }

func (w *wrappedRuleDef) Check(ctx Context, opts map[string]any) []span.Span {
	if w.def.Check == nil {
		return nil
	}
	return w.def.Check(ctx, opts)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}

// Info provides metadata about a rule for documentation and tooling.
type Info struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Severity      Severity `json:"default_severity"`
	MinParagraphs int      `json:"min_paragraphs"`
	ConfigKeys    []string `json:"config_keys,omitempty"`
}

// GetInfo extracts metadata from a Rule.
func GetInfo(r Rule) Info {
	return Info{
		ID:            r.ID(),
		Name:          r.Name(),
		Description:   r.Description(),
		Severity:      r.DefaultSeverity(),
		MinParagraphs: r.MinParagraphs(),
		ConfigKeys:    r.ConfigKeys(),
	}
}
