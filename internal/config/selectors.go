package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Selectors holds the CSS selectors used to read search result pages and
// drive application forms. Board markup changes often, so these can be
// overridden from a YAML file without a rebuild.
type Selectors struct {
	Search SearchSelectors `mapstructure:"search"`
	Apply  ApplySelectors  `mapstructure:"apply"`
}

// SearchSelectors locate listing cards and their fields on a result page
type SearchSelectors struct {
	ResultList   string `mapstructure:"resultList"`   // Scrollable container holding the cards
	Card         string `mapstructure:"card"`         // One listing card
	CardIDAttr   string `mapstructure:"cardIdAttr"`   // Attribute carrying the listing identifier
	Title        string `mapstructure:"title"`        // Job title within a card
	Company      string `mapstructure:"company"`      // Company name within a card
	Location     string `mapstructure:"location"`     // Location within a card
	BenefitsNote string `mapstructure:"benefitsNote"` // Benefits or insight note within a card
	Tag          string `mapstructure:"tag"`          // Footer tags within a card (repeated)
	DetailLink   string `mapstructure:"detailLink"`   // Anchor to the listing detail page
}

// ApplySelectors locate the quick-apply flow controls
type ApplySelectors struct {
	QuickApplyButton string `mapstructure:"quickApplyButton"` // Entry control on the listing page
	FormContainer    string `mapstructure:"formContainer"`    // The application modal
	Field            string `mapstructure:"field"`            // Inputs and selects inside the modal
	SubmitButton     string `mapstructure:"submitButton"`
	ReviewButton     string `mapstructure:"reviewButton"`
	ContinueButton   string `mapstructure:"continueButton"`
}

// DefaultSelectors returns the built-in selector set
func DefaultSelectors() Selectors {
	return Selectors{
		Search: SearchSelectors{
			ResultList:   "div.jobs-search-results-list",
			Card:         "div.job-card-container",
			CardIDAttr:   "data-job-id",
			Title:        "a.job-card-list__title",
			Company:      "span.job-card-container__primary-description",
			Location:     "li.job-card-container__metadata-item",
			BenefitsNote: "li.job-card-container__metadata-item--benefits",
			Tag:          "li.job-card-container__footer-item",
			DetailLink:   "a.job-card-list__title",
		},
		Apply: ApplySelectors{
			QuickApplyButton: "button.jobs-apply-button",
			FormContainer:    "div.jobs-easy-apply-content",
			Field:            "div.jobs-easy-apply-content input, div.jobs-easy-apply-content select",
			SubmitButton:     "button[aria-label='Submit application']",
			ReviewButton:     "button[aria-label='Review your application']",
			ContinueButton:   "button[aria-label='Continue to next step']",
		},
	}
}

// LoadSelectors reads selector overrides from a YAML file, falling back to the
// built-in defaults for any key the file does not set. An empty path returns
// the defaults.
func LoadSelectors(path string) (Selectors, error) {
	selectors := DefaultSelectors()
	if path == "" {
		return selectors, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return selectors, fmt.Errorf("failed to read selectors file %s: %w", path, err)
	}

	if err := v.Unmarshal(&selectors); err != nil {
		return selectors, fmt.Errorf("failed to unmarshal selectors file %s: %w", path, err)
	}

	return selectors, nil
}
