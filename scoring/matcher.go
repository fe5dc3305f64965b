package scoring

import (
	"strings"
)

// MatchKeywords returns the subset of keywords present as substrings of
// haystack. Both haystack and keywords are expected lowercase. Pure and
// deterministic; the same primitive serves technology, agency, and
// certification matching.
func MatchKeywords(haystack string, keywords []string) []string {
	if haystack == "" || len(keywords) == 0 {
		return nil
	}

	var matched []string
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// significantWordCount counts whitespace-separated words longer than two
// characters.
func significantWordCount(text string) int {
	count := 0
	for _, w := range strings.Fields(text) {
		if len(w) > 2 {
			count++
		}
	}
	return count
}
