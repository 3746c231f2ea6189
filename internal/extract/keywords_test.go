package extract

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseKeywordSet(t *testing.T) {
	tests := []struct {
		name     string
		response string
		k        int
		expected []string
	}{
		{
			name:     "numbered block",
			response: "<Keywords>\n1) Engineer, Go, Kubernetes\n2) Backend Developer, PostgreSQL\n<\\Keywords>",
			k:        20,
			expected: []string{"Engineer, Go, Kubernetes", "Backend Developer, PostgreSQL"},
		},
		{
			name:     "slash closing marker tolerated",
			response: "<Keywords>\n1) Data Engineer, Spark\n</Keywords>",
			k:        20,
			expected: []string{"Data Engineer, Spark"},
		},
		{
			name:     "line without numeric prefix kept verbatim",
			response: "<Keywords>\nSite Reliability Engineer (SRE), AWS\n<\\Keywords>",
			k:        20,
			expected: []string{"Site Reliability Engineer (SRE), AWS"},
		},
		{
			name:     "blank lines skipped",
			response: "<Keywords>\n\n1) DevOps, Terraform\n\n\n2) Platform Engineer\n\n<\\Keywords>",
			k:        20,
			expected: []string{"DevOps, Terraform", "Platform Engineer"},
		},
		{
			name:     "absent block yields empty list",
			response: "the model produced prose instead",
			k:        20,
			expected: nil,
		},
		{
			name:     "json shape fallback",
			response: `{"keyword_sets": ["Engineer, Go", "Analyst, SQL"]}`,
			k:        20,
			expected: []string{"Engineer, Go", "Analyst, SQL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKeywordSet(tt.response, tt.k)

			if len(got) != len(tt.expected) {
				t.Fatalf("Expected %d lines, got %d: %v", len(tt.expected), len(got), got)
			}
			for i, want := range tt.expected {
				if got[i] != want {
					t.Errorf("Line %d: expected %q, got %q", i, want, got[i])
				}
			}
		})
	}
}

func TestParseKeywordSetCapsAtK(t *testing.T) {
	var block strings.Builder
	block.WriteString("<Keywords>\n")
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&block, "%d) Role %d, Skill %d\n", i, i, i)
	}
	block.WriteString("<\\Keywords>")

	got := ParseKeywordSet(block.String(), 20)

	if len(got) != 20 {
		t.Fatalf("Expected exactly 20 lines, got %d", len(got))
	}
	for i, line := range got {
		expected := fmt.Sprintf("Role %d, Skill %d", i+1, i+1)
		if line != expected {
			t.Errorf("Line %d: expected %q, got %q", i, expected, line)
		}
	}
}

func BenchmarkParseKeywordSet(b *testing.B) {
	var block strings.Builder
	block.WriteString("<Keywords>\n")
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&block, "%d) Role %d, Skill %d\n", i, i, i)
	}
	block.WriteString("<\\Keywords>")
	response := block.String()

	for b.Loop() {
		ParseKeywordSet(response, 20)
	}
}
