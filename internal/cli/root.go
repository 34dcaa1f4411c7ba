// Package cli provides the command-line interface for prosecheck.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/prosekit-labs/prosecheck/internal/cli/commands"
	"github.com/prosekit-labs/prosecheck/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var cfgFile string

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "prosecheck",
		Short: "prosecheck - incremental grammar and style checker",
		Long: `prosecheck runs text-level analysis rules over documents.

Rules declare how much surrounding context they need; the engine schedules
re-checks at the coarsest granularity that stays correct and merges every
rule's findings into one ordered report.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
				if used := config.GetConfigFileUsed(); used != "" {
					logger.Debug("using config file", "path", used)
				}
			}

			cmd.SetContext(commands.NewContext(cmd.Context(), cfg, logger))
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: prosecheck.yaml, searched upward)")
	flags.Int("context", 0, "Paragraphs to check around an edit (-1 unbounded, -2 whole document)")
	flags.StringSlice("disable", nil, "Rule IDs to disable")
	flags.BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		commands.NewCheckCommand(),
		commands.NewRulesCommand(),
		commands.NewVersionCommand(Version),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// Main is the entry point used by cmd/prosecheck.
func Main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
