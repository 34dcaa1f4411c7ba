package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/prosekit-labs/prosecheck/pkg/rule"
	_ "github.com/prosekit-labs/prosecheck/pkg/rules" // register built-in rules
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Format string // Output format: text, json
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available text-level rules",
		Long: `List all registered rules with their paragraph-context demands.

The context column shows how much surrounding text a rule needs re-checked
after an edit: the current paragraph, a window of n paragraphs, the
configured window, or the whole document.`,
		Example: `  # List all rules
  prosecheck rules

  # Show one rule
  prosecheck rules doubled-word

  # Output as JSON
  prosecheck rules --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	return cmd
}

// contextLabel describes a MinParagraphs contract for humans.
func contextLabel(minParas int) string {
	switch {
	case minParas == 0:
		return "current paragraph"
	case minParas > 0:
		return fmt.Sprintf("%d paragraphs", minParas)
	case minParas == rule.ContextConfigured:
		return "configured window"
	default:
		return "whole document"
	}
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	infos := make([]rule.Info, 0, rule.Count())
	for _, r := range rule.All() {
		infos = append(infos, rule.GetInfo(r))
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Context", "Severity", "Description"})
	for _, info := range infos {
		t.AppendRow(table.Row{
			info.ID, info.Name, contextLabel(info.MinParagraphs),
			info.Severity.String(), info.Description,
		})
	}
	t.Render()
	return nil
}

func showRule(cmd *cobra.Command, id string, opts *RulesOptions) error {
	r, ok := rule.GetByID(id)
	if !ok {
		return fmt.Errorf("unknown rule: %s", id)
	}
	info := rule.GetInfo(r)

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", info.ID, info.Name)
	fmt.Fprintf(out, "  %s\n", info.Description)
	fmt.Fprintf(out, "  context:  %s\n", contextLabel(info.MinParagraphs))
	fmt.Fprintf(out, "  severity: %s\n", info.Severity)
	if len(info.ConfigKeys) > 0 {
		fmt.Fprintf(out, "  options:  %v\n", info.ConfigKeys)
	}
	return nil
}
