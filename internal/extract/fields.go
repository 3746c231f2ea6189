package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"jobscout/internal/errors"
	"jobscout/internal/types"
)

// The four field markers a delimited-shape response may carry. A response
// is treated as delimited when any marker is present; otherwise the JSON
// shape is assumed.
var fieldMarkers = []string{"positions", "current_location", "years_experience", "skills"}

// HasFieldMarkers reports whether response uses the delimited-field shape.
func HasFieldMarkers(response string) bool {
	for _, name := range fieldMarkers {
		if strings.Contains(response, "{"+name+"}:") {
			return true
		}
	}
	return false
}

// ParseFields scans response for the literal "{field}:" markers, each
// terminated by the next newline or end of string. A field whose marker
// is absent yields an empty string; this never fails.
func ParseFields(response string) types.ExtractedFields {
	return types.ExtractedFields{
		Positions:       fieldValue(response, "positions"),
		CurrentLocation: fieldValue(response, "current_location"),
		YearsExperience: fieldValue(response, "years_experience"),
		Skills:          fieldValue(response, "skills"),
	}
}

func fieldValue(response, name string) string {
	marker := "{" + name + "}:"
	idx := strings.Index(response, marker)
	if idx < 0 {
		return ""
	}
	rest := response[idx+len(marker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}
	return strings.TrimSpace(rest)
}

// jsonSlice returns the inclusive substring between the first '{' and the
// last '}' of response.
func jsonSlice(response string) (string, error) {
	start := strings.IndexByte(response, '{')
	end := strings.LastIndexByte(response, '}')
	if start < 0 || end < start {
		return "", errors.NewExtractionError(errors.ErrCodeMalformedExtraction,
			"Response contains no JSON object", nil)
	}
	return response[start : end+1], nil
}

// ParseCompanies parses the JSON-embedded shape into per-company records,
// preserving the key order of the response. Parse failures surface as a
// recoverable EXTRACTION_MALFORMED error; the caller skips the chunk.
func ParseCompanies(response string) (types.ChunkExtraction, error) {
	var out types.ChunkExtraction

	body, err := jsonSlice(response)
	if err != nil {
		return out, err
	}

	dec := json.NewDecoder(strings.NewReader(body))
	tok, err := dec.Token()
	if err != nil {
		return out, errors.NewExtractionError(errors.ErrCodeMalformedExtraction,
			"Failed to parse extraction response", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return out, errors.NewExtractionError(errors.ErrCodeMalformedExtraction,
			"Extraction response is not a JSON object", nil)
	}

	out.Companies = make(map[string]types.CompanyEntry)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return types.ChunkExtraction{}, errors.NewExtractionError(errors.ErrCodeMalformedExtraction,
				"Failed to parse extraction response", err)
		}
		company, ok := keyTok.(string)
		if !ok {
			return types.ChunkExtraction{}, errors.NewExtractionError(errors.ErrCodeMalformedExtraction,
				"Extraction response has a non-string key", nil)
		}

		var entry types.CompanyEntry
		if err := dec.Decode(&entry); err != nil {
			return types.ChunkExtraction{}, errors.NewExtractionError(errors.ErrCodeMalformedExtraction,
				"Failed to parse company entry", err).WithContext("company", company)
		}

		if _, seen := out.Companies[company]; !seen {
			out.Order = append(out.Order, company)
		}
		out.Companies[company] = entry
	}

	return out, nil
}

// ParseLocation extracts the current location from either response shape.
// The literal answer "None" and parse failures both degrade to an empty
// string.
func ParseLocation(response string) string {
	if HasFieldMarkers(response) {
		return normalizeLocation(ParseFields(response).CurrentLocation)
	}

	body, err := jsonSlice(response)
	if err != nil {
		return ""
	}
	var obj struct {
		CurrentLocation string `json:"current_location"`
	}
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return ""
	}
	return normalizeLocation(obj.CurrentLocation)
}

// ParseYears extracts a years-experience figure from either response shape.
// Parse failures degrade to nil, never an error.
func ParseYears(response string) *int {
	if HasFieldMarkers(response) {
		return NormalizeYears(ParseFields(response).YearsExperience)
	}

	body, err := jsonSlice(response)
	if err != nil {
		return nil
	}
	var obj struct {
		YearsExperience any `json:"years_experience"`
	}
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return nil
	}
	switch v := obj.YearsExperience.(type) {
	case string:
		return NormalizeYears(v)
	case float64:
		n := int(v)
		if n < 0 {
			return nil
		}
		return &n
	}
	return nil
}

// NormalizeYears turns an answer like "5 years" into an integer by parsing
// only the first whitespace-separated token. Anything that does not parse
// as a non-negative integer degrades to nil.
func NormalizeYears(value string) *int {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return nil
	}
	n, err := strconv.Atoi(tokens[0])
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func normalizeLocation(location string) string {
	location = strings.TrimSpace(location)
	if strings.EqualFold(location, "none") {
		return ""
	}
	return location
}
