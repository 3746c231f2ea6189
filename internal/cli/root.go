package cli

import (
	"context"

	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/observability"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}
type obsKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}
var obsKey = obsKeyType{}

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "A CLI tool for automating the job hunt with AI",
	Long: `Jobscout turns a resume into a reusable search profile using AI,
collects matching job listings from board search pages, and walks
quick-apply forms on your behalf. Each stage persists its artifact so
the stages can run independently.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger, om *observability.ObservabilityManager) error {
	// Attach the config, logger and observability manager to the context,
	// making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	ctx = context.WithValue(ctx, obsKey, om)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// getObservabilityFromContext returns the observability manager, which may
// carry disabled (no-op) metrics
func getObservabilityFromContext(ctx context.Context) *observability.ObservabilityManager {
	if om, ok := ctx.Value(obsKey).(*observability.ObservabilityManager); ok {
		return om
	}
	panic("observability manager not found in context") // Should not happen if properly initialized
}

func init() {
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(versionCmd)
}
