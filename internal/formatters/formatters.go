package formatters

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobscout/internal/types"
)

// Formatter interface for different output formats
type Formatter interface {
	Format(data any) (string, error)
	SupportedType() string
}

// FormatterRegistry manages all available formatters
type FormatterRegistry struct {
	formatters map[string]map[string]Formatter // format -> type -> formatter
}

// NewFormatterRegistry creates a new formatter registry with default formatters
func NewFormatterRegistry() *FormatterRegistry {
	registry := &FormatterRegistry{
		formatters: make(map[string]map[string]Formatter),
	}

	// Register default formatters
	registry.RegisterFormatter("json", "any", &JSONFormatter{})
	registry.RegisterFormatter("text", "UserProfile", &ProfileTextFormatter{})
	registry.RegisterFormatter("markdown", "UserProfile", &ProfileMarkdownFormatter{})
	registry.RegisterFormatter("text", "ListingList", &ListingsTextFormatter{})
	registry.RegisterFormatter("markdown", "ListingList", &ListingsMarkdownFormatter{})
	registry.RegisterFormatter("text", "ApplyReport", &ApplyReportTextFormatter{})
	registry.RegisterFormatter("markdown", "ApplyReport", &ApplyReportMarkdownFormatter{})

	return registry
}

// RegisterFormatter registers a new formatter for a specific format and data type
func (fr *FormatterRegistry) RegisterFormatter(format, dataType string, formatter Formatter) {
	if fr.formatters[format] == nil {
		fr.formatters[format] = make(map[string]Formatter)
	}
	fr.formatters[format][dataType] = formatter
}

// Format formats data using the appropriate formatter
func (fr *FormatterRegistry) Format(data any, format string) (string, error) {
	dataType := getDataType(data)

	// Try specific formatter first
	if formatters, exists := fr.formatters[format]; exists {
		if formatter, exists := formatters[dataType]; exists {
			return formatter.Format(data)
		}
		// Fall back to generic formatter
		if formatter, exists := formatters["any"]; exists {
			return formatter.Format(data)
		}
	}

	return "", fmt.Errorf("no formatter found for format '%s' and type '%s'", format, dataType)
}

// GetSupportedFormats returns all supported formats
func (fr *FormatterRegistry) GetSupportedFormats() []string {
	formats := make([]string, 0, len(fr.formatters))
	for format := range fr.formatters {
		formats = append(formats, format)
	}
	return formats
}

func getDataType(data any) string {
	switch data.(type) {
	case types.UserProfile:
		return "UserProfile"
	case []types.ListingRecord:
		return "ListingList"
	case types.ApplyReport:
		return "ApplyReport"
	default:
		return "any"
	}
}

// JSONFormatter handles JSON formatting for any data type
type JSONFormatter struct{}

func (jf *JSONFormatter) Format(data any) (string, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}

func (jf *JSONFormatter) SupportedType() string {
	return "any"
}

// ProfileTextFormatter handles text formatting for parsed profiles
type ProfileTextFormatter struct{}

func (ptf *ProfileTextFormatter) Format(data any) (string, error) {
	profile, ok := data.(types.UserProfile)
	if !ok {
		return "", fmt.Errorf("expected UserProfile, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== CANDIDATE PROFILE ===\n\n")

	if len(profile.Positions) > 0 {
		output.WriteString("Positions:\n")
		for _, position := range profile.Positions {
			output.WriteString(fmt.Sprintf("- %s\n", position))
		}
		output.WriteString("\n")
	}

	if profile.Location != "" {
		output.WriteString(fmt.Sprintf("Location: %s\n", profile.Location))
	}
	if profile.YearsExperience != nil {
		output.WriteString(fmt.Sprintf("Years of experience: %d\n", *profile.YearsExperience))
	} else {
		output.WriteString("Years of experience: unknown\n")
	}
	output.WriteString("\n")

	if len(profile.Skills) > 0 {
		output.WriteString("Skills:\n")
		output.WriteString(strings.Join(profile.Skills, ", "))
		output.WriteString("\n\n")
	}

	if len(profile.KeywordLines) > 0 {
		output.WriteString("=== SEARCH KEYWORD COMBINATIONS ===\n")
		for i, line := range profile.KeywordLines {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, line))
		}
	}

	return output.String(), nil
}

func (ptf *ProfileTextFormatter) SupportedType() string {
	return "UserProfile"
}

// ProfileMarkdownFormatter handles markdown formatting for parsed profiles
type ProfileMarkdownFormatter struct{}

func (pmf *ProfileMarkdownFormatter) Format(data any) (string, error) {
	profile, ok := data.(types.UserProfile)
	if !ok {
		return "", fmt.Errorf("expected UserProfile, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Candidate Profile\n\n")

	if len(profile.Positions) > 0 {
		output.WriteString("## Positions\n\n")
		for _, position := range profile.Positions {
			output.WriteString(fmt.Sprintf("- %s\n", position))
		}
		output.WriteString("\n")
	}

	if profile.Location != "" {
		output.WriteString(fmt.Sprintf("**Location:** %s\n\n", profile.Location))
	}
	if profile.YearsExperience != nil {
		output.WriteString(fmt.Sprintf("**Years of experience:** %d\n\n", *profile.YearsExperience))
	} else {
		output.WriteString("**Years of experience:** unknown\n\n")
	}

	if len(profile.Skills) > 0 {
		output.WriteString("## Skills\n\n")
		output.WriteString(strings.Join(profile.Skills, ", "))
		output.WriteString("\n\n")
	}

	if len(profile.KeywordLines) > 0 {
		output.WriteString("## Search Keyword Combinations\n\n")
		for i, line := range profile.KeywordLines {
			output.WriteString(fmt.Sprintf("%d. %s\n", i+1, line))
		}
	}

	return output.String(), nil
}

func (pmf *ProfileMarkdownFormatter) SupportedType() string {
	return "UserProfile"
}

// ListingsTextFormatter handles text formatting for collected listings
type ListingsTextFormatter struct{}

func (ltf *ListingsTextFormatter) Format(data any) (string, error) {
	listings, ok := data.([]types.ListingRecord)
	if !ok {
		return "", fmt.Errorf("expected []ListingRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("=== COLLECTED LISTINGS (%d) ===\n\n", len(listings)))

	for i, listing := range listings {
		output.WriteString(fmt.Sprintf("%d. %s\n", i+1, listing.Title))
		output.WriteString(fmt.Sprintf("   Company: %s\n", listing.Company))
		if listing.Location != "" {
			output.WriteString(fmt.Sprintf("   Location: %s\n", listing.Location))
		}
		if listing.BenefitsNote != "" {
			output.WriteString(fmt.Sprintf("   Benefits: %s\n", listing.BenefitsNote))
		}
		if len(listing.Tags) > 0 {
			output.WriteString(fmt.Sprintf("   Tags: %s\n", strings.Join(listing.Tags, ", ")))
		}
		output.WriteString(fmt.Sprintf("   URL: %s\n\n", listing.DetailURL))
	}

	return output.String(), nil
}

func (ltf *ListingsTextFormatter) SupportedType() string {
	return "ListingList"
}

// ListingsMarkdownFormatter handles markdown formatting for collected listings
type ListingsMarkdownFormatter struct{}

func (lmf *ListingsMarkdownFormatter) Format(data any) (string, error) {
	listings, ok := data.([]types.ListingRecord)
	if !ok {
		return "", fmt.Errorf("expected []ListingRecord, got %T", data)
	}

	var output strings.Builder

	output.WriteString(fmt.Sprintf("# Collected Listings (%d)\n\n", len(listings)))

	for i, listing := range listings {
		output.WriteString(fmt.Sprintf("## %d. %s\n\n", i+1, listing.Title))
		output.WriteString(fmt.Sprintf("**Company:** %s\n\n", listing.Company))
		if listing.Location != "" {
			output.WriteString(fmt.Sprintf("**Location:** %s\n\n", listing.Location))
		}
		if listing.BenefitsNote != "" {
			output.WriteString(fmt.Sprintf("**Benefits:** %s\n\n", listing.BenefitsNote))
		}
		if len(listing.Tags) > 0 {
			output.WriteString(fmt.Sprintf("**Tags:** %s\n\n", strings.Join(listing.Tags, ", ")))
		}
		output.WriteString(fmt.Sprintf("[View listing](%s)\n\n", listing.DetailURL))
	}

	return output.String(), nil
}

func (lmf *ListingsMarkdownFormatter) SupportedType() string {
	return "ListingList"
}

// ApplyReportTextFormatter handles text formatting for apply run reports
type ApplyReportTextFormatter struct{}

func (arf *ApplyReportTextFormatter) Format(data any) (string, error) {
	report, ok := data.(types.ApplyReport)
	if !ok {
		return "", fmt.Errorf("expected ApplyReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== APPLICATION RUN REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Submitted: %d\n", report.Submitted))
	output.WriteString(fmt.Sprintf("Stuck:     %d\n", report.Stuck))
	output.WriteString(fmt.Sprintf("Skipped:   %d\n\n", report.Skipped))

	if len(report.Results) > 0 {
		output.WriteString("=== RESULTS ===\n\n")
		for i, result := range report.Results {
			title := result.Title
			if title == "" {
				title = result.JobID
			}
			output.WriteString(fmt.Sprintf("%d. %s", i+1, title))
			if result.Company != "" {
				output.WriteString(fmt.Sprintf(" at %s", result.Company))
			}
			output.WriteString("\n")
			if !result.Applicable {
				output.WriteString("   Outcome: not applicable\n")
			} else {
				output.WriteString(fmt.Sprintf("   Outcome: %s (%d steps)\n", result.State, result.Steps))
			}
			if result.Reason != "" {
				output.WriteString(fmt.Sprintf("   Reason: %s\n", result.Reason))
			}
			output.WriteString("\n")
		}
	}

	return output.String(), nil
}

func (arf *ApplyReportTextFormatter) SupportedType() string {
	return "ApplyReport"
}

// ApplyReportMarkdownFormatter handles markdown formatting for apply run reports
type ApplyReportMarkdownFormatter struct{}

func (armf *ApplyReportMarkdownFormatter) Format(data any) (string, error) {
	report, ok := data.(types.ApplyReport)
	if !ok {
		return "", fmt.Errorf("expected ApplyReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# Application Run Report\n\n")
	output.WriteString(fmt.Sprintf("**Submitted:** %d\n\n", report.Submitted))
	output.WriteString(fmt.Sprintf("**Stuck:** %d\n\n", report.Stuck))
	output.WriteString(fmt.Sprintf("**Skipped:** %d\n\n", report.Skipped))

	if len(report.Results) > 0 {
		output.WriteString("## Results\n\n")
		for i, result := range report.Results {
			title := result.Title
			if title == "" {
				title = result.JobID
			}
			output.WriteString(fmt.Sprintf("### %d. %s\n\n", i+1, title))
			if result.Company != "" {
				output.WriteString(fmt.Sprintf("**Company:** %s\n\n", result.Company))
			}
			if !result.Applicable {
				output.WriteString("**Outcome:** not applicable\n\n")
			} else {
				output.WriteString(fmt.Sprintf("**Outcome:** %s (%d steps)\n\n", result.State, result.Steps))
			}
			if result.Reason != "" {
				output.WriteString(fmt.Sprintf("**Reason:** %s\n\n", result.Reason))
			}
		}
	}

	return output.String(), nil
}

func (armf *ApplyReportMarkdownFormatter) SupportedType() string {
	return "ApplyReport"
}

// Global formatter registry
var GlobalRegistry = NewFormatterRegistry()
