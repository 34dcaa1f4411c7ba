package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/prosekit-labs/prosecheck/internal/config"
	"github.com/prosekit-labs/prosecheck/internal/watch"
	"github.com/prosekit-labs/prosecheck/internal/wordfreq"
	"github.com/prosekit-labs/prosecheck/pkg/check"
	"github.com/prosekit-labs/prosecheck/pkg/rule"
	"github.com/prosekit-labs/prosecheck/pkg/rules"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	Format   string // Output format: text, json
	Watch    bool   // Re-run when the config file changes
	TopWords int    // Print the N most used words after the run
}

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	opts := &CheckOptions{}
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Check text files for grammar and style problems",
		Long: `Run all registered text-level rules over the given files.

Files are split into paragraphs at blank lines. Rules are scheduled by the
paragraph context they need; spans from all rules are merged into one
ordered report. Rules can be configured in prosecheck.yaml.`,
		Example: `  # Check a file
  prosecheck check draft.txt

  # Check several files, whole-document mode
  prosecheck check --context=-2 ch1.txt ch2.txt

  # Output as JSON
  prosecheck check --format json draft.txt

  # Disable a rule for this run
  prosecheck check --disable doubled-word draft.txt

  # Show the ten most used words afterwards
  prosecheck check --top-words 10 draft.txt`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Re-run when the config file changes")
	cmd.Flags().IntVar(&opts.TopWords, "top-words", 0, "Print the N most used words after the run")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions, paths []string) error {
	cfg := getConfig(cmd)
	logger := getLogger(cmd)

	if opts.Format != "" {
		cfg.OutputFormat = opts.Format
	}

	if opts.Watch {
		return runCheckWatch(cmd, opts, paths)
	}
	return checkOnce(cmd, cfg, logger, opts, paths)
}

// runCheckWatch runs one pass, then again after every settled config change.
func runCheckWatch(cmd *cobra.Command, opts *CheckOptions, paths []string) error {
	cfgFile := config.GetConfigFileUsed()
	if cfgFile == "" {
		return fmt.Errorf("--watch needs a config file (prosecheck.yaml not found)")
	}
	logger := getLogger(cmd)

	run := func() {
		cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "config reload failed: %v\n", err)
			return
		}
		if opts.Format != "" {
			cfg.OutputFormat = opts.Format
		}
		if err := checkOnce(cmd, cfg, logger, opts, paths); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
		}
	}

	run()
	w := &watch.Watcher{Path: cfgFile, OnChange: run, Logger: logger}
	return w.Run(cmd.Context())
}

// fileFinding is one report row.
type fileFinding struct {
	File        string   `json:"file"`
	Paragraph   int      `json:"paragraph"`
	Start       int      `json:"start"`
	Length      int      `json:"length"`
	RuleID      string   `json:"rule"`
	Severity    string   `json:"severity"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func checkOnce(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, opts *CheckOptions, paths []string) error {
	docs := make(map[string]*rule.Document, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs[path] = rule.SplitParagraphs(string(data))
	}

	checkerOpts := append(cfg.CheckerOptions(), check.WithLogger(logger))

	var store *wordfreq.Store
	if opts.TopWords > 0 || cfg.WordStats != "" {
		path := cfg.WordStats
		if path == "" {
			path = ":memory:"
		}
		var err error
		store, err = wordfreq.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		// Seed the session with this run's counts so the overused-word
		// rule sees usage across every file, not just its own window.
		if err := store.RecordAll(countWords(docs)); err != nil {
			return err
		}
		ruleOpts := make(map[string]any, len(cfg.RuleOptions[rules.OverusedWord.ID])+1)
		for k, v := range cfg.RuleOptions[rules.OverusedWord.ID] {
			ruleOpts[k] = v
		}
		ruleOpts[rules.CounterOption] = store
		checkerOpts = append(checkerOpts, check.WithRuleOptions(map[string]map[string]any{
			rules.OverusedWord.ID: ruleOpts,
		}))
	}

	checker := check.New(checkerOpts...)
	results, err := check.CheckAll(cmd.Context(), checker, docs)
	if err != nil {
		return err
	}

	var rows []fileFinding
	errors := 0
	for _, path := range paths {
		for _, f := range results[path] {
			if f.Severity == rule.SeverityError {
				errors++
			}
			rows = append(rows, fileFinding{
				File:        path,
				Paragraph:   f.Paragraph,
				Start:       f.Span.Start,
				Length:      f.Span.Length,
				RuleID:      f.Span.RuleID,
				Severity:    f.Severity.String(),
				Message:     f.Span.Message,
				Suggestions: f.Span.Suggestions,
			})
		}
	}

	switch cfg.OutputFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return err
		}
	default:
		renderFindings(cmd, rows)
	}

	if opts.TopWords > 0 {
		if err := renderTopWords(cmd, store, opts.TopWords); err != nil {
			return err
		}
	}

	if errors > 0 {
		return fmt.Errorf("found %d error-level problems", errors)
	}
	return nil
}

func renderFindings(cmd *cobra.Command, rows []fileFinding) {
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No problems found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Para", "Pos", "Rule", "Severity", "Message", "Suggestions"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.File, r.Paragraph, fmt.Sprintf("%d+%d", r.Start, r.Length),
			r.RuleID, r.Severity, r.Message, strings.Join(r.Suggestions, ", "),
		})
	}
	t.Render()
}

// countWords tallies the run's words the way the statistics store expects
// them: lowercased, stripped of surrounding punctuation, short ones dropped.
func countWords(docs map[string]*rule.Document) map[string]int {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, para := range doc.Paragraphs {
			for _, w := range strings.Fields(para) {
				w = strings.ToLower(strings.Trim(w, ".,;:!?\"'()"))
				if len(w) >= 4 {
					counts[w]++
				}
			}
		}
	}
	return counts
}

// renderTopWords prints the most used words of the run.
func renderTopWords(cmd *cobra.Command, store *wordfreq.Store, n int) error {
	top, err := store.Top(n)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Word", "Count"})
	for _, wc := range top {
		t.AppendRow(table.Row{wc.Word, wc.Count})
	}
	t.Render()
	return nil
}
