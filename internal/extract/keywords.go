package extract

import (
	"encoding/json"
	"strings"
)

const keywordsOpenMarker = "<Keywords>"

// The closing marker carries a literal backslash; the slash variant is
// tolerated as well.
var keywordsCloseMarkers = []string{`<\Keywords>`, "</Keywords>"}

// ParseKeywordSet extracts up to k candidate keyword lines from response.
// The numbered-list shape (a <Keywords> block of "N) terms" lines) is
// tried first, then a JSON object with a "keyword_sets" array. An absent
// block yields an empty list, not an error; overflow beyond k is truncated.
func ParseKeywordSet(response string, k int) []string {
	if k <= 0 {
		return nil
	}

	if block, ok := keywordBlock(response); ok {
		return capLines(parseKeywordLines(block), k)
	}

	if body, err := jsonSlice(response); err == nil {
		var obj struct {
			KeywordSets []string `json:"keyword_sets"`
		}
		if err := json.Unmarshal([]byte(body), &obj); err == nil {
			return capLines(trimNonBlank(obj.KeywordSets), k)
		}
	}

	return nil
}

func keywordBlock(response string) (string, bool) {
	start := strings.Index(response, keywordsOpenMarker)
	if start < 0 {
		return "", false
	}
	rest := response[start+len(keywordsOpenMarker):]

	for _, closing := range keywordsCloseMarkers {
		if end := strings.Index(rest, closing); end >= 0 {
			return rest[:end], true
		}
	}
	// No closing marker: take everything after the opening one.
	return rest, true
}

func parseKeywordLines(block string) []string {
	var out []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, stripNumericPrefix(line))
	}
	return out
}

// stripNumericPrefix removes an "N) "-style prefix, keeping the text after
// the first ')'. Lines without such a prefix are kept verbatim.
func stripNumericPrefix(line string) string {
	idx := strings.IndexByte(line, ')')
	if idx < 0 {
		return line
	}
	prefix := strings.TrimSpace(line[:idx])
	if prefix == "" {
		return line
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return line
		}
	}
	return strings.TrimSpace(line[idx+1:])
}

func trimNonBlank(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func capLines(lines []string, k int) []string {
	if len(lines) > k {
		return lines[:k]
	}
	return lines
}
