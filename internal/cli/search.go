package cli

import (
	"context"
	"fmt"

	"jobscout/internal/ai"
	"jobscout/internal/automation"
	"jobscout/internal/common"
	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/search"
	"jobscout/internal/store"
	"jobscout/internal/types"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Collect job listings matching the saved profile",
	Long: `Collect job listings from board search pages using the saved profile.
One search URL is built per keyword combination, each result page is
scrolled until it stops growing, and the deduplicated listings are
persisted for the apply stage. Requires a running browser exposing a
DevTools endpoint.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if searchConfig.OutputFormat == "" {
			searchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(searchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runSearch,
}

var searchConfig common.CommandConfig
var searchFlags struct {
	windowDays     int
	maxURLs        int
	quickApplyOnly bool
}

func init() {
	searchCmd.Flags().StringVarP(&searchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	searchCmd.Flags().StringVar(&searchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	searchCmd.Flags().IntVar(&searchFlags.windowDays, "days", 0, "Posting recency window in days (default: configured window)")
	searchCmd.Flags().IntVar(&searchFlags.maxURLs, "max-urls", 0, "Stop after this many search URLs (default: configured cap)")
	searchCmd.Flags().BoolVar(&searchFlags.quickApplyOnly, "quick-apply-only", false, "Restrict results to quick-apply listings")

	_ = searchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	om := getObservabilityFromContext(cmd.Context())

	searchCfg := effectiveSearchConfig(cmd, cfg)

	artifactStore := store.New(cfg.App.DataDir, logger)
	profile, err := artifactStore.LoadProfile()
	if err != nil {
		return fmt.Errorf("failed to load profile (run parse first): %w", err)
	}
	if len(profile.KeywordLines) == 0 {
		return errors.NewValidationError(errors.ErrCodeEmptyProfile,
			"Saved profile has no keyword combinations", nil)
	}

	builder := search.Builder{BaseURL: searchCfg.BaseURL}
	urls := builder.BuildAll(profile.KeywordLines, profile.Location, searchCfg.WindowDays, searchCfg.QuickApplyOnly)
	logger.Info("Built search URLs",
		"urls", len(urls),
		"window_days", searchCfg.WindowDays,
		"quick_apply_only", searchCfg.QuickApplyOnly)

	rig, err := newBrowserRig(cmd.Context(), cfg, logger, om)
	if err != nil {
		return err
	}
	defer rig.close(logger)

	collector := automation.NewCollector(rig.session, rig.selectors, cfg.Browser, searchCfg, rig.pacer, logger)

	metrics := om.GetMetrics()
	collector.SetCollectedObserver(func(count int) {
		metrics.RecordBusinessMetric(cmd.Context(), "listing_collected", int64(count), om)
	})

	if err := rig.watchSelectors(cmd.Context(), cfg, logger, om, collector.UpdateSelectors); err != nil {
		return err
	}

	operation := func(ctx context.Context) ([]types.ListingRecord, *ai.TokenUsage, error) {
		listings, err := collector.Collect(ctx, urls)
		if err != nil {
			return nil, nil, err
		}
		if err := artifactStore.SaveListings(listings); err != nil {
			return nil, nil, err
		}
		logger.Info("Saved listings", "path", artifactStore.ListingsPath(), "listings", len(listings))
		return listings, nil, nil
	}

	if err := common.RunCommand(cmd.Context(), logger, searchConfig, operation); err != nil {
		return fmt.Errorf("failed to collect listings: %w", err)
	}
	logger.Info("Listing collection completed successfully")
	return nil
}

// effectiveSearchConfig overlays the command flags on the configured search
// settings. Only flags the user actually set take effect.
func effectiveSearchConfig(cmd *cobra.Command, cfg *config.Config) config.SearchConfig {
	searchCfg := cfg.Search
	if cmd.Flags().Changed("days") {
		searchCfg.WindowDays = searchFlags.windowDays
	}
	if cmd.Flags().Changed("max-urls") {
		searchCfg.MaxURLs = searchFlags.maxURLs
	}
	if cmd.Flags().Changed("quick-apply-only") {
		searchCfg.QuickApplyOnly = searchFlags.quickApplyOnly
	}
	return searchCfg
}
