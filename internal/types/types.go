package types

// ResumeChunk is one word-boundary-aligned segment of the resume text.
// Chunks are created by the chunker, consumed once by extraction, and
// discarded; concatenating all chunks reconstructs the source exactly.
type ResumeChunk struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
}

// ExtractedFields holds the four known flat extraction fields. Absent
// fields are empty strings, never an error.
type ExtractedFields struct {
	Positions       string `json:"positions"`
	CurrentLocation string `json:"current_location"`
	YearsExperience string `json:"years_experience"`
	Skills          string `json:"skills"`
}

// CompanyEntry is one employer's record as extracted from a single chunk.
type CompanyEntry struct {
	Positions []string `json:"positions"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Skills    []string `json:"skills"`
}

// ChunkExtraction holds one chunk's extracted company records. Order
// preserves the key order of the model response so the merged history
// stays most-recent-first.
type ChunkExtraction struct {
	Order     []string                `json:"order"`
	Companies map[string]CompanyEntry `json:"companies"`
}

// JobRecord is one employer's merged record. Identity is the company name,
// case-sensitive; the first occurrence wins grouping. Immutable once the
// aggregation returns.
type JobRecord struct {
	Company   string   `json:"company"`
	Positions []string `json:"positions"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Skills    []string `json:"skills"`
}

// WorkHistory is the ordered, deduplicated sequence of job records,
// most-recent-first. TotalYears is nil when no record carried a parsable
// date; "unknown" is distinct from "zero years".
type WorkHistory struct {
	Jobs       []JobRecord `json:"jobs"`
	TotalYears *int        `json:"totalYears,omitempty"`
}

// UserProfile is the durable artifact produced by the parse stage and
// consumed by the search stage.
type UserProfile struct {
	Positions       []string `json:"positions"`
	Location        string   `json:"location"`
	YearsExperience *int     `json:"years_experience,omitempty"`
	Skills          []string `json:"skills"`
	KeywordLines    []string `json:"keyword_combinations"`
}

// SearchQuery maps 1:1 to a search URL. Terms is one comma-separated
// keyword line; the builder OR-joins the individual terms.
type SearchQuery struct {
	Terms          string `json:"terms"`
	Location       string `json:"location"`
	WindowDays     int    `json:"windowDays"`
	QuickApplyOnly bool   `json:"quickApplyOnly"`
}

// ListingRecord is one collected job posting. Identity is the ID; a
// run-scoped seen set guards against duplicate insertion across pages
// and queries.
type ListingRecord struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	BenefitsNote string   `json:"benefitsNote"`
	Tags         []string `json:"tags"`
	DetailURL    string   `json:"detailUrl"`
}

// FieldKind classifies a discovered form control.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindDropdown FieldKind = "dropdown"
	FieldKindFile     FieldKind = "file"
)

// FormField is a form control discovered on one application step. Fields
// are rediscovered fresh on every step and never persisted.
type FormField struct {
	Label string    `json:"label"`
	Kind  FieldKind `json:"kind"`
	Skip  bool      `json:"skip"`
}

// ApplyState is the state of one quick-apply attempt.
type ApplyState string

const (
	ApplyStateFilling    ApplyState = "filling"
	ApplyStateReviewing  ApplyState = "reviewing"
	ApplyStateSubmitting ApplyState = "submitting"
	ApplyStateDone       ApplyState = "done"
	ApplyStateStuck      ApplyState = "stuck"
)

// ApplyResult is the reported outcome of one application attempt.
type ApplyResult struct {
	JobID      string     `json:"jobId"`
	Title      string     `json:"title,omitempty"`
	Company    string     `json:"company,omitempty"`
	Applicable bool       `json:"applicable"`
	State      ApplyState `json:"state,omitempty"`
	Steps      int        `json:"steps"`
	Reason     string     `json:"reason,omitempty"`
}

// ApplyReport summarizes an apply run over a set of listings.
type ApplyReport struct {
	Results   []ApplyResult `json:"results"`
	Submitted int           `json:"submitted"`
	Stuck     int           `json:"stuck"`
	Skipped   int           `json:"skipped"`
}
