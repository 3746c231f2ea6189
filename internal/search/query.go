package search

import (
	"fmt"
	"net/url"
	"strings"

	"jobscout/internal/types"
)

// DefaultBaseURL is the job search endpoint queries are built against.
const DefaultBaseURL = "https://www.linkedin.com/jobs/search/"

const secondsPerDay = 86400

// Builder turns keyword lines into search URLs. The zero value uses
// DefaultBaseURL.
type Builder struct {
	BaseURL string
}

// Build constructs a single search URL from one comma-separated keyword
// line. The terms are OR-joined so one URL covers the whole line, the
// time window is expressed in seconds, and results are always sorted by
// date descending.
func (b Builder) Build(q types.SearchQuery) string {
	base := b.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	terms := make([]string, 0, 4)
	for _, term := range strings.Split(q.Terms, ",") {
		if term = strings.TrimSpace(term); term != "" {
			terms = append(terms, term)
		}
	}
	keywords := strings.Join(terms, " OR ")

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("?keywords=")
	sb.WriteString(url.QueryEscape(keywords))
	sb.WriteString("&location=")
	sb.WriteString(url.QueryEscape(q.Location))
	fmt.Fprintf(&sb, "&f_TPR=r%d", q.WindowDays*secondsPerDay)
	sb.WriteString("&sortBy=DD")
	if q.QuickApplyOnly {
		sb.WriteString("&f_AL=true")
	}
	return sb.String()
}

// BuildAll maps Build over a set of keyword lines, one URL per line.
func (b Builder) BuildAll(lines []string, location string, windowDays int, quickApplyOnly bool) []string {
	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		urls = append(urls, b.Build(types.SearchQuery{
			Terms:          line,
			Location:       location,
			WindowDays:     windowDays,
			QuickApplyOnly: quickApplyOnly,
		}))
	}
	return urls
}
