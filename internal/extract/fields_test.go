package extract

import (
	"testing"

	"jobscout/internal/errors"
)

func TestParseFields(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected struct {
			positions, location, years, skills string
		}
	}{
		{
			name: "all four markers",
			response: "{positions}: Backend Engineer, Team Lead\n" +
				"{current_location}: Berlin, Germany\n" +
				"{years_experience}: 7\n" +
				"{skills}: Go, PostgreSQL",
			expected: struct{ positions, location, years, skills string }{
				"Backend Engineer, Team Lead", "Berlin, Germany", "7", "Go, PostgreSQL",
			},
		},
		{
			name:     "only positions marker",
			response: "{positions}: A, B",
			expected: struct{ positions, location, years, skills string }{
				"A, B", "", "", "",
			},
		},
		{
			name:     "markers in arbitrary order with prose",
			response: "Here you go:\n{skills}: Python\nsome chatter\n{positions}: Analyst",
			expected: struct{ positions, location, years, skills string }{
				"Analyst", "", "", "Python",
			},
		},
		{
			name:     "no markers at all",
			response: "the model ignored the instructions entirely",
			expected: struct{ positions, location, years, skills string }{"", "", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := ParseFields(tt.response)

			if fields.Positions != tt.expected.positions {
				t.Errorf("Positions: expected %q, got %q", tt.expected.positions, fields.Positions)
			}
			if fields.CurrentLocation != tt.expected.location {
				t.Errorf("CurrentLocation: expected %q, got %q", tt.expected.location, fields.CurrentLocation)
			}
			if fields.YearsExperience != tt.expected.years {
				t.Errorf("YearsExperience: expected %q, got %q", tt.expected.years, fields.YearsExperience)
			}
			if fields.Skills != tt.expected.skills {
				t.Errorf("Skills: expected %q, got %q", tt.expected.skills, fields.Skills)
			}
		})
	}
}

func TestParseCompanies(t *testing.T) {
	response := "Sure, here is the extraction:\n" +
		`{"Acme Corp": {"positions": ["Engineer"], "start_date": "01/2020", "end_date": "present", "skills": ["Go"]},` +
		`"Globex": {"positions": ["Analyst"], "start_date": "06/2018", "end_date": "12/2019", "skills": ["SQL"]}}` +
		"\nLet me know if you need anything else."

	ex, err := ParseCompanies(response)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(ex.Order) != 2 {
		t.Fatalf("Expected 2 companies, got %d", len(ex.Order))
	}
	if ex.Order[0] != "Acme Corp" || ex.Order[1] != "Globex" {
		t.Errorf("Expected source key order preserved, got %v", ex.Order)
	}

	acme := ex.Companies["Acme Corp"]
	if len(acme.Positions) != 1 || acme.Positions[0] != "Engineer" {
		t.Errorf("Unexpected positions for Acme Corp: %v", acme.Positions)
	}
	if acme.StartDate != "01/2020" || acme.EndDate != "present" {
		t.Errorf("Unexpected dates for Acme Corp: %q - %q", acme.StartDate, acme.EndDate)
	}
}

func TestParseCompaniesMalformed(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "no braces", response: "no braces here"},
		{name: "unbalanced braces", response: "prefix } then {"},
		{name: "entry is not an object", response: `{"Acme": "just a string"}`},
		{name: "broken json", response: `{"Acme": {"positions": [}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCompanies(tt.response)
			if err == nil {
				t.Fatal("Expected error but got none")
			}
			if !errors.HasCode(err, errors.ErrCodeMalformedExtraction) {
				t.Errorf("Expected %s error, got %v", errors.ErrCodeMalformedExtraction, err)
			}
		})
	}
}

func TestNormalizeYears(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected *int
	}{
		{name: "bare integer", value: "5", expected: intPtr(5)},
		{name: "years suffix", value: "5 years", expected: intPtr(5)},
		{name: "zero", value: "0", expected: intPtr(0)},
		{name: "leading whitespace", value: "  12 years of experience", expected: intPtr(12)},
		{name: "non-numeric", value: "several years", expected: nil},
		{name: "negative", value: "-3", expected: nil},
		{name: "empty", value: "", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeYears(tt.value)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			if got != nil && *got != *tt.expected {
				t.Errorf("Expected %d, got %d", *tt.expected, *got)
			}
		})
	}
}

func TestParseYears(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected *int
	}{
		{name: "json string value", response: `{"current_location": "Oslo", "years_experience": "8 years"}`, expected: intPtr(8)},
		{name: "json numeric value", response: `{"years_experience": 4}`, expected: intPtr(4)},
		{name: "delimited shape", response: "{years_experience}: 7", expected: intPtr(7)},
		{name: "field absent", response: `{"current_location": "Oslo"}`, expected: nil},
		{name: "unparseable", response: "no structure here", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseYears(tt.response)
			if (got == nil) != (tt.expected == nil) {
				t.Fatalf("Expected %v, got %v", tt.expected, got)
			}
			if got != nil && *got != *tt.expected {
				t.Errorf("Expected %d, got %d", *tt.expected, *got)
			}
		})
	}
}

func intPtr(n int) *int { return &n }

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{name: "json shape", response: `{"current_location": "Hamburg"}`, expected: "Hamburg"},
		{name: "json shape with prose", response: "answer: {\"current_location\": \"Madrid\"} done", expected: "Madrid"},
		{name: "delimited shape", response: "{current_location}: Lisbon", expected: "Lisbon"},
		{name: "literal none", response: `{"current_location": "None"}`, expected: ""},
		{name: "unparseable", response: "nothing to see", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLocation(tt.response); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}
