package extract

import (
	"strconv"
	"strings"

	"jobscout/internal/types"
)

// Sentinels chosen so an empty record set is detectable: a min that no
// real year exceeds and a max that every real year exceeds.
const (
	sentinelMinYear = 3000
	sentinelMaxYear = 0
)

const presentMarker = "present"

// Aggregate merges per-chunk extractions into one deduplicated work
// history, keyed by company name (case-sensitive, first occurrence wins
// grouping). A company seen in several chunks accumulates its positions
// and skills and keeps the first non-empty start/end date. TotalYears is
// maxEndYear minus minStartYear across records with parsable dates, with
// "present" counted as currentYear; it is nil when no record carried one.
func Aggregate(extractions []types.ChunkExtraction, currentYear int) types.WorkHistory {
	var order []string
	merged := make(map[string]*types.JobRecord)

	for _, ex := range extractions {
		for _, company := range ex.Order {
			entry := ex.Companies[company]
			rec, ok := merged[company]
			if !ok {
				rec = &types.JobRecord{Company: company}
				merged[company] = rec
				order = append(order, company)
			}
			rec.Positions = append(rec.Positions, entry.Positions...)
			rec.Skills = append(rec.Skills, entry.Skills...)
			if rec.StartDate == "" {
				rec.StartDate = entry.StartDate
			}
			if rec.EndDate == "" {
				rec.EndDate = entry.EndDate
			}
		}
	}

	history := types.WorkHistory{Jobs: make([]types.JobRecord, 0, len(order))}
	minStart := sentinelMinYear
	maxEnd := sentinelMaxYear

	for _, company := range order {
		rec := merged[company]
		history.Jobs = append(history.Jobs, *rec)

		if year, ok := dateYear(rec.StartDate); ok && year < minStart {
			minStart = year
		}
		endYear, ok := dateYear(rec.EndDate)
		if strings.EqualFold(strings.TrimSpace(rec.EndDate), presentMarker) {
			endYear, ok = currentYear, true
		}
		if ok && endYear > maxEnd {
			maxEnd = endYear
		}
	}

	if minStart != sentinelMinYear && maxEnd != sentinelMaxYear {
		total := maxEnd - minStart
		history.TotalYears = &total
	}

	return history
}

// dateYear parses the year out of an "MM/YYYY"-style date string: the
// trailing numeric token split on '/'. Malformed dates are treated as
// absent rather than failing the aggregation.
func dateYear(date string) (int, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, false
	}
	parts := strings.Split(date, "/")
	year, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return 0, false
	}
	return year, true
}
