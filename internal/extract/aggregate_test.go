package extract

import (
	"testing"

	"jobscout/internal/types"
)

func singleCompany(name string, entry types.CompanyEntry) types.ChunkExtraction {
	return types.ChunkExtraction{
		Order:     []string{name},
		Companies: map[string]types.CompanyEntry{name: entry},
	}
}

func TestAggregateTotalYears(t *testing.T) {
	tests := []struct {
		name        string
		extractions []types.ChunkExtraction
		currentYear int
		expected    int
	}{
		{
			name: "open-ended single record",
			extractions: []types.ChunkExtraction{
				singleCompany("Acme", types.CompanyEntry{StartDate: "01/2020", EndDate: "present"}),
			},
			currentYear: 2025,
			expected:    5,
		},
		{
			name: "two records spanning a gap",
			extractions: []types.ChunkExtraction{
				singleCompany("Globex", types.CompanyEntry{StartDate: "06/2018", EndDate: "05/2020"}),
				singleCompany("Initech", types.CompanyEntry{StartDate: "01/2021", EndDate: "present"}),
			},
			currentYear: 2025,
			expected:    7,
		},
		{
			name: "present marker is case-insensitive",
			extractions: []types.ChunkExtraction{
				singleCompany("Acme", types.CompanyEntry{StartDate: "03/2022", EndDate: "Present"}),
			},
			currentYear: 2025,
			expected:    3,
		},
		{
			name: "malformed start date skipped",
			extractions: []types.ChunkExtraction{
				singleCompany("Acme", types.CompanyEntry{StartDate: "garbage", EndDate: "12/2023"}),
				singleCompany("Globex", types.CompanyEntry{StartDate: "01/2019", EndDate: "06/2021"}),
			},
			currentYear: 2025,
			expected:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := Aggregate(tt.extractions, tt.currentYear)

			if history.TotalYears == nil {
				t.Fatal("Expected total years to be defined")
			}
			if *history.TotalYears != tt.expected {
				t.Errorf("Expected %d total years, got %d", tt.expected, *history.TotalYears)
			}
		})
	}
}

func TestAggregateUndefinedTotal(t *testing.T) {
	tests := []struct {
		name        string
		extractions []types.ChunkExtraction
	}{
		{name: "no extractions", extractions: nil},
		{
			name: "no dates at all",
			extractions: []types.ChunkExtraction{
				singleCompany("Acme", types.CompanyEntry{Positions: []string{"Engineer"}}),
			},
		},
		{
			name: "only malformed dates",
			extractions: []types.ChunkExtraction{
				singleCompany("Acme", types.CompanyEntry{StartDate: "spring", EndDate: "later"}),
			},
		},
		{
			name: "start date but no end date",
			extractions: []types.ChunkExtraction{
				singleCompany("Acme", types.CompanyEntry{StartDate: "01/2020"}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := Aggregate(tt.extractions, 2025)

			// Undefined must stay distinguishable from zero years.
			if history.TotalYears != nil {
				t.Errorf("Expected undefined total years, got %d", *history.TotalYears)
			}
		})
	}
}

func TestAggregateMergesCompaniesAcrossChunks(t *testing.T) {
	extractions := []types.ChunkExtraction{
		singleCompany("Acme", types.CompanyEntry{
			Positions: []string{"Engineer"},
			StartDate: "02/2019",
			Skills:    []string{"Go"},
		}),
		singleCompany("Acme", types.CompanyEntry{
			Positions: []string{"Senior Engineer"},
			StartDate: "01/2010", // later chunk's date must not win
			EndDate:   "present",
			Skills:    []string{"Go", "Kubernetes"},
		}),
	}

	history := Aggregate(extractions, 2025)

	if len(history.Jobs) != 1 {
		t.Fatalf("Expected 1 merged record, got %d", len(history.Jobs))
	}

	job := history.Jobs[0]
	if job.Company != "Acme" {
		t.Errorf("Expected company Acme, got %q", job.Company)
	}
	if len(job.Positions) != 2 {
		t.Errorf("Expected accumulated positions, got %v", job.Positions)
	}
	// Duplicates are allowed by contract.
	if len(job.Skills) != 3 {
		t.Errorf("Expected 3 accumulated skills, got %v", job.Skills)
	}
	if job.StartDate != "02/2019" {
		t.Errorf("Expected first non-empty start date to win, got %q", job.StartDate)
	}
	if job.EndDate != "present" {
		t.Errorf("Expected end date from second chunk, got %q", job.EndDate)
	}
	if history.TotalYears == nil || *history.TotalYears != 6 {
		t.Errorf("Expected 6 total years, got %v", history.TotalYears)
	}
}

func TestAggregatePreservesSourceOrder(t *testing.T) {
	extractions := []types.ChunkExtraction{
		{
			Order: []string{"Newest Corp", "Older LLC"},
			Companies: map[string]types.CompanyEntry{
				"Newest Corp": {StartDate: "01/2023", EndDate: "present"},
				"Older LLC":   {StartDate: "01/2015", EndDate: "12/2022"},
			},
		},
		singleCompany("Oldest GmbH", types.CompanyEntry{StartDate: "01/2008", EndDate: "12/2014"}),
	}

	history := Aggregate(extractions, 2025)

	expected := []string{"Newest Corp", "Older LLC", "Oldest GmbH"}
	if len(history.Jobs) != len(expected) {
		t.Fatalf("Expected %d records, got %d", len(expected), len(history.Jobs))
	}
	for i, want := range expected {
		if history.Jobs[i].Company != want {
			t.Errorf("Record %d: expected %q, got %q", i, want, history.Jobs[i].Company)
		}
	}
}
