package cli

import (
	"context"
	"fmt"

	"jobscout/internal/ai"
	"jobscout/internal/automation"
	"jobscout/internal/common"
	"jobscout/internal/errors"
	"jobscout/internal/store"
	"jobscout/internal/types"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Submit quick-apply applications for collected listings",
	Long: `Walk the quick-apply flow for every collected listing. Each form step
is filled from the saved profile, sensitive fields are skipped, and the
attempt is declared stuck rather than retried when the form stops making
progress. Requires a running browser exposing a DevTools endpoint.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if applyConfig.OutputFormat == "" {
			applyConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(applyConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runApply,
}

var applyConfig common.CommandConfig
var applyLimit int

func init() {
	applyCmd.Flags().StringVarP(&applyConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	applyCmd.Flags().StringVar(&applyConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	applyCmd.Flags().IntVar(&applyLimit, "limit", 0, "Max applications to submit this run (default: configured limit)")

	_ = applyCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	om := getObservabilityFromContext(cmd.Context())

	applyCfg := cfg.Apply
	if cmd.Flags().Changed("limit") {
		applyCfg.Limit = applyLimit
	}

	artifactStore := store.New(cfg.App.DataDir, logger)
	profile, err := artifactStore.LoadProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile (run parse first): %w", err)
	}
	listings, err := artifactStore.LoadListings()
	if err != nil {
		return fmt.Errorf("failed to load listings (run search first): %w", err)
	}
	if len(listings) == 0 {
		return errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"No listings to apply to", nil)
	}

	rig, err := newBrowserRig(cmd.Context(), cfg, logger, om)
	if err != nil {
		return err
	}
	defer rig.close(logger)

	engine := automation.NewEngine(rig.session, rig.selectors, cfg.Browser, applyCfg, profile, rig.pacer, logger)

	metrics := om.GetMetrics()
	engine.SetResultObserver(func(result types.ApplyResult) {
		switch result.State {
		case types.ApplyStateDone:
			metrics.RecordBusinessMetric(cmd.Context(), "application_submitted", 1, om)
		case types.ApplyStateStuck:
			metrics.RecordBusinessMetric(cmd.Context(), "application_stuck", 1, om)
		}
	})

	if err := rig.watchSelectors(cmd.Context(), cfg, logger, om, engine.UpdateSelectors); err != nil {
		return err
	}

	logger.Info("Starting apply run",
		"listings", len(listings),
		"limit", applyCfg.Limit,
		"max_steps", applyCfg.MaxSteps)

	operation := func(ctx context.Context) (types.ApplyReport, *ai.TokenUsage, error) {
		report, err := engine.Run(ctx, listings)
		if err != nil {
			return types.ApplyReport{}, nil, err
		}
		return report, nil, nil
	}

	if err := common.RunCommand(cmd.Context(), logger, applyConfig, operation); err != nil {
		return fmt.Errorf("failed to run applications: %w", err)
	}
	logger.Info("Apply run completed successfully")
	return nil
}
