// Package pipeline orchestrates the parse stage: chunk the resume, extract
// work history and location through the model, aggregate, and generate
// search keyword combinations.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobscout/internal/ai"
	"jobscout/internal/config"
	"jobscout/internal/errors"
	"jobscout/internal/extract"
	"jobscout/internal/types"
)

// Builder runs the resume-to-profile pipeline.
type Builder struct {
	provider ai.Provider
	parseCfg config.ParseConfig
	logger   *errors.Logger

	// now is injected so aggregation is deterministic in tests.
	now func() time.Time
}

// NewBuilder creates a profile builder over an AI provider.
func NewBuilder(provider ai.Provider, parseCfg config.ParseConfig, logger *errors.Logger) *Builder {
	return &Builder{
		provider: provider,
		parseCfg: parseCfg,
		logger:   logger,
		now:      time.Now,
	}
}

// BuildProfile turns raw resume text into a profile. A chunk whose
// extraction response cannot be parsed is skipped with a warning; provider
// failures abort the build. Focus falls back to the configured default.
func (b *Builder) BuildProfile(ctx context.Context, resumeText, focus string) (types.UserProfile, *ai.TokenUsage, error) {
	if focus == "" {
		focus = b.parseCfg.Focus
	}

	chunks := extract.Chunk(resumeText, b.parseCfg.ChunkMaxWords)
	if len(chunks) == 0 {
		return types.UserProfile{}, nil, errors.NewValidationError(errors.ErrCodeEmptyProfile,
			"Resume text contains no words", nil)
	}
	if b.logger != nil {
		b.logger.Info("Chunked resume", "chunks", len(chunks), "max_words", b.parseCfg.ChunkMaxWords)
	}

	totalUsage := &ai.TokenUsage{}

	extractions := b.extractHistory(ctx, chunks, totalUsage)
	history := extract.Aggregate(extractions, b.now().Year())
	if len(history.Jobs) == 0 {
		return types.UserProfile{}, totalUsage, errors.NewValidationError(errors.ErrCodeEmptyProfile,
			"No work history could be extracted from the resume", nil)
	}

	location, statedYears := b.extractLocation(ctx, chunks[0].Text, totalUsage)

	// Dates are authoritative; a stated figure fills in only when no record
	// carried a parsable date.
	years := history.TotalYears
	if years == nil {
		years = statedYears
	}

	keywordLines, err := b.generateKeywords(ctx, history, focus, totalUsage)
	if err != nil {
		return types.UserProfile{}, totalUsage, err
	}

	profile := types.UserProfile{
		Positions:       collectPositions(history),
		Location:        location,
		YearsExperience: years,
		Skills:          collectSkills(history),
		KeywordLines:    keywordLines,
	}

	if b.logger != nil {
		b.logger.Info("Built profile",
			"companies", len(history.Jobs),
			"positions", len(profile.Positions),
			"skills", len(profile.Skills),
			"keyword_lines", len(profile.KeywordLines),
			"location", profile.Location)
	}
	return profile, totalUsage, nil
}

// extractHistory runs history extraction over every chunk. Malformed
// responses skip the chunk; the remaining chunks still form a profile.
func (b *Builder) extractHistory(ctx context.Context, chunks []types.ResumeChunk, totalUsage *ai.TokenUsage) []types.ChunkExtraction {
	var extractions []types.ChunkExtraction

	for _, chunk := range chunks {
		response, usage, err := b.provider.ExtractHistory(ctx, chunk.Text)
		accumulateUsage(totalUsage, usage)
		if err != nil {
			if b.logger != nil {
				b.logger.LogError(err, "History extraction failed for chunk", "chunk", chunk.Index)
			}
			continue
		}

		extraction, err := extract.ParseCompanies(response)
		if err != nil {
			if errors.HasCode(err, errors.ErrCodeMalformedExtraction) {
				if b.logger != nil {
					b.logger.Warn("Skipping chunk with malformed extraction",
						"chunk", chunk.Index, "error", err)
				}
				continue
			}
			if b.logger != nil {
				b.logger.LogError(err, "Failed to parse extraction", "chunk", chunk.Index)
			}
			continue
		}

		extractions = append(extractions, extraction)
	}
	return extractions
}

// extractLocation asks the model for the candidate's location using the
// first chunk, which is where resumes carry contact details. The response
// may also state a years-experience figure ("5 years"), returned as a
// fallback for date-free histories. Failure leaves both empty rather than
// aborting the build.
func (b *Builder) extractLocation(ctx context.Context, firstChunk string, totalUsage *ai.TokenUsage) (string, *int) {
	response, usage, err := b.provider.ExtractLocation(ctx, firstChunk)
	accumulateUsage(totalUsage, usage)
	if err != nil {
		if b.logger != nil {
			b.logger.Warn("Location extraction failed", "error", err)
		}
		return "", nil
	}
	return extract.ParseLocation(response), extract.ParseYears(response)
}

func (b *Builder) generateKeywords(ctx context.Context, history types.WorkHistory, focus string, totalUsage *ai.TokenUsage) ([]string, error) {
	summary := historySummary(history)

	response, usage, err := b.provider.GenerateKeywords(ctx, summary, b.parseCfg.KeywordCount, focus)
	accumulateUsage(totalUsage, usage)
	if err != nil {
		return nil, err
	}

	lines := extract.ParseKeywordSet(response, b.parseCfg.KeywordCount)
	if len(lines) == 0 {
		return nil, errors.NewExtractionError(errors.ErrCodeMalformedExtraction,
			"Keyword response contained no usable combinations", nil)
	}
	return lines, nil
}

// historySummary renders the merged history as compact text for the
// keyword generation prompt.
func historySummary(history types.WorkHistory) string {
	var sb strings.Builder

	for _, job := range history.Jobs {
		sb.WriteString(job.Company)
		if len(job.Positions) > 0 {
			sb.WriteString(": ")
			sb.WriteString(strings.Join(job.Positions, ", "))
		}
		if job.StartDate != "" || job.EndDate != "" {
			fmt.Fprintf(&sb, " (%s - %s)", job.StartDate, job.EndDate)
		}
		if len(job.Skills) > 0 {
			sb.WriteString("; skills: ")
			sb.WriteString(strings.Join(job.Skills, ", "))
		}
		sb.WriteString("\n")
	}

	if history.TotalYears != nil {
		fmt.Fprintf(&sb, "Total years of experience: %d\n", *history.TotalYears)
	}
	return sb.String()
}

// collectPositions returns the deduplicated positions across all jobs,
// most recent employer first.
func collectPositions(history types.WorkHistory) []string {
	return uniqueInOrder(history.Jobs, func(job types.JobRecord) []string { return job.Positions })
}

// collectSkills returns the deduplicated skills across all jobs.
func collectSkills(history types.WorkHistory) []string {
	return uniqueInOrder(history.Jobs, func(job types.JobRecord) []string { return job.Skills })
}

func uniqueInOrder(jobs []types.JobRecord, pick func(types.JobRecord) []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, job := range jobs {
		for _, value := range pick(job) {
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true
			out = append(out, value)
		}
	}
	return out
}

func accumulateUsage(total, usage *ai.TokenUsage) {
	if usage == nil {
		return
	}
	total.InputTokens += usage.InputTokens
	total.OutputTokens += usage.OutputTokens
	total.TotalTokens += usage.TotalTokens
}
