// Package config provides configuration management for the prosecheck CLI
// and library embedders. Values merge in priority order: defaults, config
// file, PROSECHECK_ environment variables, command-line flags.
package config

import (
	"github.com/prosekit-labs/prosecheck/pkg/check"
	"github.com/prosekit-labs/prosecheck/pkg/rule"
)

// Config holds all configuration options.
type Config struct {
	// NumParasToCheck is the look-around window in paragraphs. -1 requests
	// unbounded context, -2 whole-document-only checking.
	NumParasToCheck int `koanf:"num_paras_to_check"`

	// DisabledRules lists rule ids to exclude before classification.
	DisabledRules []string `koanf:"disabled_rules"`

	// SeverityOverrides maps rule ids to severity names.
	SeverityOverrides map[string]string `koanf:"severity_overrides"`

	// RuleOptions carries per-rule options, keyed by rule id.
	RuleOptions map[string]map[string]any `koanf:"rule_options"`

	// WordStats is the path of the word statistics database; empty
	// disables statistics, ":memory:" keeps them for one run only.
	WordStats string `koanf:"word_stats"`

	OutputFormat string `koanf:"output"`
	Verbose      bool   `koanf:"verbose"`
}

// CheckerOptions converts the configuration into checker options.
func (c *Config) CheckerOptions() []check.Option {
	overrides := make(map[string]rule.Severity, len(c.SeverityOverrides))
	for id, name := range c.SeverityOverrides {
		overrides[id] = rule.ParseSeverity(name)
	}
	return []check.Option{
		check.WithLookaround(c.NumParasToCheck),
		check.WithDisabledRules(c.DisabledRules...),
		check.WithSeverityOverrides(overrides),
		check.WithRuleOptions(c.RuleOptions),
	}
}
