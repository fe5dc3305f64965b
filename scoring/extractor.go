package scoring

import (
	"regexp"
	"strings"

	"capturehub/models"
)

// Standalone six-digit tokens; longer digit runs don't match.
var naicsPattern = regexp.MustCompile(`\b\d{6}\b`)

// Extraction is the structured output of one capability-statement parse
type Extraction struct {
	NAICS    []string `json:"naics"`
	Agencies []string `json:"agencies"`
	Skills   []string `json:"skills"`
}

// ExtractCapabilities parses free text into NAICS codes, agency names, and
// skill tags. Agency and skill matches record the canonical list entry, not
// the substring found. Empty input yields an empty extraction; this never
// fails.
func ExtractCapabilities(text string, kw Keywords) Extraction {
	var ex Extraction
	if strings.TrimSpace(text) == "" {
		return ex
	}

	seen := make(map[string]bool)
	for _, code := range naicsPattern.FindAllString(text, -1) {
		if !seen[code] {
			ex.NAICS = append(ex.NAICS, code)
			seen[code] = true
		}
	}

	lower := strings.ToLower(text)
	for _, agency := range kw.ExtractorAgencies {
		if strings.Contains(lower, strings.ToLower(agency)) {
			ex.Agencies = append(ex.Agencies, agency)
		}
	}
	for _, skill := range kw.ExtractorSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			ex.Skills = append(ex.Skills, skill)
		}
	}

	return ex
}

// UnionStrings merges src into dst without duplicates, preserving the order
// of dst and the relative order of new entries. Comparison is
// case-insensitive so repeat extractions stay idempotent.
func UnionStrings(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[strings.ToLower(v)] = true
	}
	out := dst
	for _, v := range src {
		key := strings.ToLower(v)
		if !seen[key] {
			out = append(out, v)
			seen[key] = true
		}
	}
	return out
}

// MergeExtraction unions an extraction into the partner's tag sets.
// Additive only; existing tags are never removed.
func MergeExtraction(p *models.Partner, ex Extraction) {
	p.NAICSCodes = UnionStrings(p.NAICSCodes, ex.NAICS)
	p.Agencies = UnionStrings(p.Agencies, ex.Agencies)
	p.Skills = UnionStrings(p.Skills, ex.Skills)
}
