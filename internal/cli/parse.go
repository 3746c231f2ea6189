package cli

import (
	"context"
	"fmt"

	"jobscout/internal/ai"
	"jobscout/internal/common"
	"jobscout/internal/document"
	"jobscout/internal/observability"
	"jobscout/internal/pipeline"
	"jobscout/internal/store"
	"jobscout/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file]",
	Short: "Parse a PDF resume into a search profile",
	Long: `Parse a PDF resume into a reusable search profile using AI.
The resume is chunked and sent to the model for work history and location
extraction, then keyword combinations are generated for the search stage.
The profile is persisted so search and apply can run without re-parsing.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var parseConfig common.CommandConfig
var parseFocus string

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	parseCmd.Flags().StringVar(&parseFocus, "focus", "", "Search focus for keyword generation (default: configured focus)")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	om := getObservabilityFromContext(cmd.Context())

	extractor := document.NewExtractor(cfg.App.MaxFileSize, logger)
	resumeText, err := extractor.ExtractText(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	// Create one AI service per operation so each runs its configured model
	extractAIConfig := cfg.GetExtractConfig()
	extractService, err := ai.NewService(&extractAIConfig, "extract", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	locationAIConfig := cfg.GetLocationConfig()
	locationService, err := ai.NewService(&locationAIConfig, "location", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}
	keywordsAIConfig := cfg.GetKeywordsConfig()
	keywordsService, err := ai.NewService(&keywordsAIConfig, "keywords", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	provider := ai.OperationProviders{
		Extract:  extractService.Provider,
		Location: locationService.Provider,
		Keywords: keywordsService.Provider,
	}
	defer func() {
		if closeErr := provider.Close(); closeErr != nil {
			logger.Warn("Failed to close AI providers", "error", closeErr)
		}
	}()

	builder := pipeline.NewBuilder(provider, cfg.Parse, logger)
	profileStore := store.New(cfg.App.DataDir, logger)

	logger.Info("Starting resume parsing",
		"resume_file", args[0],
		"resume_chars", len(resumeText),
		"output_format", parseConfig.OutputFormat)

	operation := func(ctx context.Context) (types.UserProfile, *ai.TokenUsage, error) {
		var profile types.UserProfile
		var usage *ai.TokenUsage

		metrics := om.GetMetrics()
		buildErr := metrics.TrackAIOperationWithTokens(ctx, "build_profile", func(ctx context.Context) *observability.AIOperationResult {
			var err error
			profile, usage, err = builder.BuildProfile(ctx, resumeText, parseFocus)
			return &observability.AIOperationResult{
				Error:      err,
				TokenUsage: toObservabilityUsage(usage),
			}
		}, om)
		if buildErr != nil {
			return types.UserProfile{}, usage, buildErr
		}

		if err := profileStore.SaveProfile(profile); err != nil {
			return types.UserProfile{}, usage, err
		}
		metrics.RecordBusinessMetric(ctx, "resume_parsed", 1, om)
		logger.Info("Saved profile", "path", profileStore.ProfilePath())
		return profile, usage, nil
	}

	if err := common.RunCommand(cmd.Context(), logger, parseConfig, operation); err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	logger.Info("Resume parsing completed successfully")
	return nil
}

// toObservabilityUsage converts provider token usage for metric recording
func toObservabilityUsage(usage *ai.TokenUsage) *observability.TokenUsage {
	if usage == nil {
		return nil
	}
	return &observability.TokenUsage{
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		TotalTokens:  usage.TotalTokens,
	}
}
