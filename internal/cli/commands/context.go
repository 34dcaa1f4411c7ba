// Package commands implements the prosecheck CLI commands.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/prosekit-labs/prosecheck/internal/config"
	"github.com/prosekit-labs/prosecheck/pkg/check"
)

// configKey is used to store config in context.
type configKey struct{}

// loggerKey is used to store logger in context.
type loggerKey struct{}

// NewContext stores the loaded config and logger for command retrieval.
func NewContext(ctx context.Context, cfg *config.Config, logger *slog.Logger) context.Context {
	ctx = context.WithValue(ctx, configKey{}, cfg)
	return context.WithValue(ctx, loggerKey{}, logger)
}

// getConfig returns the loaded configuration, or defaults when the root
// command did not run (direct command construction in tests).
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return &config.Config{
		NumParasToCheck: check.DefaultLookaround,
		OutputFormat:    "text",
	}
}

// getLogger returns the logger, defaulting to discard.
func getLogger(cmd *cobra.Command) *slog.Logger {
	if l, ok := cmd.Context().Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
