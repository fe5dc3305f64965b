package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"capturehub/models"
)

// Component caps
const (
	maxContentQuality = 25
	maxTechScore      = 25.0
	maxAgencyScore    = 25
	maxCertScore      = 20
	maxPerfScore      = 10
	maxPartnerScore   = 50
	maxGapFillBonus   = 35
	maxPartnerBonus   = 30
	topPartnerCount   = 3
)

// Breakdown itemizes the company-fit score components
type Breakdown struct {
	ContentQuality     int     `json:"content_quality"`
	TechnicalMatch     float64 `json:"technical_match"`
	AgencyMatch        int     `json:"agency_match"`
	CertificationMatch int     `json:"certification_match"`
	PastPerformance    int     `json:"past_performance"`
}

// SuggestedPartner is one ranked teaming recommendation
type SuggestedPartner struct {
	PartnerID   uint   `json:"partner_id"`
	Name        string `json:"name"`
	Score       int    `json:"score"`       // team-score contribution, 0-30
	Probability int    `json:"probability"` // 5-100
	Reason      string `json:"reason"`
}

// Result is the full output of one scoring run
type Result struct {
	CompanyScore       int                `json:"company_score"`
	CompanyReason      string             `json:"company_reason"`
	TeamScore          int                `json:"team_score"`
	TeamRecommendation string             `json:"team_recommendation"`
	SuggestedPartners  []SuggestedPartner `json:"suggested_partners"`
	Breakdown          Breakdown          `json:"breakdown"`
	Strengths          []string           `json:"strengths"`
	Risks              []string           `json:"risks"`
	Confidence         string             `json:"confidence"`
}

// Scorer computes deterministic company-fit and team-fit scores for a lead.
// No external calls; scoring the same inputs twice yields identical results.
type Scorer struct {
	keywords Keywords
}

func NewScorer(kw Keywords) *Scorer {
	return &Scorer{keywords: kw}
}

// BuildOpportunityText assembles the scoring haystack from the lead's
// structured fields plus extracted attachment excerpts.
func BuildOpportunityText(lead models.Lead, attachmentTexts []string) string {
	parts := []string{
		"Title: " + lead.Title,
		"Description: " + lead.Description,
		"Deal type: " + lead.DealType,
		"Sector: " + lead.Sector,
		"Department: " + lead.Department,
		"Status: " + lead.OpportunityStatus,
	}
	parts = append(parts, attachmentTexts...)
	return strings.Join(parts, "\n")
}

// Score runs the full scoring pass against the company capability text and
// the candidate partner pool. Partners should already be filtered to
// Vetted/Active/Prospective by the caller.
func (s *Scorer) Score(opportunityText, companyText string, partners []models.Partner) Result {
	oppLower := strings.ToLower(opportunityText)
	companyLower := strings.ToLower(companyText)

	wordCount := significantWordCount(oppLower)
	contentScore := contentQualityScore(wordCount)

	techBoth := MatchKeywords(companyLower, MatchKeywords(oppLower, s.keywords.Technologies))
	agencyBoth := MatchKeywords(companyLower, MatchKeywords(oppLower, s.keywords.Agencies))
	certBoth := MatchKeywords(companyLower, MatchKeywords(oppLower, s.keywords.Certifications))
	perfMatched := MatchKeywords(companyLower, s.keywords.PerformancePhrases)

	techScore := math.Min(float64(len(techBoth))*2.5, maxTechScore)
	agencyScore := minInt(len(agencyBoth)*5, maxAgencyScore)
	certScore := minInt(len(certBoth)*4, maxCertScore)
	perfScore := minInt(len(perfMatched)*2, maxPerfScore)

	companyScore := clampInt(int(math.Round(
		float64(contentScore)+techScore+float64(agencyScore)+float64(certScore)+float64(perfScore))), 0, 100)

	suggested := s.rankPartners(oppLower, companyLower, partners)

	teamScore := companyScore
	for _, sp := range suggested {
		teamScore += sp.Score
	}
	teamScore = clampInt(teamScore, 0, 100)

	result := Result{
		CompanyScore: companyScore,
		CompanyReason: fmt.Sprintf(
			"Matched %d technology, %d agency, and %d certification keywords between the opportunity and the company capability statement",
			len(techBoth), len(agencyBoth), len(certBoth)),
		TeamScore:          teamScore,
		TeamRecommendation: teamRecommendation(teamScore),
		SuggestedPartners:  suggested,
		Breakdown: Breakdown{
			ContentQuality:     contentScore,
			TechnicalMatch:     techScore,
			AgencyMatch:        agencyScore,
			CertificationMatch: certScore,
			PastPerformance:    perfScore,
		},
		Confidence: confidenceLevel(wordCount),
	}

	for _, kw := range techBoth {
		result.Strengths = append(result.Strengths, "Technology match: "+kw)
	}
	for _, kw := range agencyBoth {
		result.Strengths = append(result.Strengths, "Agency relationship: "+kw)
	}
	for _, kw := range certBoth {
		result.Strengths = append(result.Strengths, "Certification: "+kw)
	}

	if companyText == "" {
		result.Risks = append(result.Risks, "Company capability statement is empty")
	}
	if len(techBoth) == 0 {
		result.Risks = append(result.Risks, "No technology overlap with the company capability statement")
	}
	if len(agencyBoth) == 0 {
		result.Risks = append(result.Risks, "No prior relationship signal for the buying agency")
	}
	if wordCount < 50 {
		result.Risks = append(result.Risks, "Opportunity description is thin; match confidence is reduced")
	}

	return result
}

// rankPartners scores each candidate, sorts descending, and keeps the top
// three mapped to team-score contributions.
func (s *Scorer) rankPartners(oppLower, companyLower string, partners []models.Partner) []SuggestedPartner {
	type ranked struct {
		partner models.Partner
		score   int
	}

	candidates := make([]ranked, 0, len(partners))
	for _, p := range partners {
		candidates = append(candidates, ranked{partner: p, score: s.scorePartner(oppLower, companyLower, p)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > topPartnerCount {
		candidates = candidates[:topPartnerCount]
	}

	suggested := make([]SuggestedPartner, 0, len(candidates))
	for _, c := range candidates {
		bonus := int(math.Round(float64(c.score) / maxPartnerScore * maxPartnerBonus))
		probability := clampInt(int(math.Round(float64(c.score)*1.8)), 5, 100)
		suggested = append(suggested, SuggestedPartner{
			PartnerID:   c.partner.ID,
			Name:        c.partner.Name,
			Score:       bonus,
			Probability: probability,
			Reason:      partnerReason(c.score),
		})
	}
	return suggested
}

// scorePartner computes the 0-50 partner score: a quality baseline from the
// performance rating, a thin-text penalty, and a gap-fill bonus for
// keywords the opportunity needs, the company lacks, and the partner has.
// Agency gaps weigh highest since partners are valued for covering agency
// relationships the company itself lacks.
func (s *Scorer) scorePartner(oppLower, companyLower string, p models.Partner) int {
	partnerText := strings.ToLower(partnerCapabilityText(p))

	score := clampInt(int(math.Round(float64(p.PerformanceRating)/100*15)), 0, 15)
	if significantWordCount(partnerText) < 5 {
		score -= 10
	}

	gapFill := 0
	gapFill += 3 * countGapFill(oppLower, companyLower, partnerText, s.keywords.Technologies)
	gapFill += 7 * countGapFill(oppLower, companyLower, partnerText, s.keywords.Agencies)
	gapFill += 5 * countGapFill(oppLower, companyLower, partnerText, s.keywords.Certifications)
	if gapFill > maxGapFillBonus {
		gapFill = maxGapFillBonus
	}

	return clampInt(score+gapFill, 0, maxPartnerScore)
}

func partnerCapabilityText(p models.Partner) string {
	parts := []string{p.Capabilities}
	parts = append(parts, p.Skills...)
	parts = append(parts, p.Agencies...)
	parts = append(parts, p.NAICSCodes...)
	return strings.Join(parts, " ")
}

func countGapFill(oppLower, companyLower, partnerLower string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(oppLower, kw) && !strings.Contains(companyLower, kw) && strings.Contains(partnerLower, kw) {
			count++
		}
	}
	return count
}

func contentQualityScore(wordCount int) int {
	switch {
	case wordCount < 10:
		return 5
	case wordCount < 50:
		return 12
	case wordCount < 150:
		return 18
	default:
		return maxContentQuality
	}
}

func teamRecommendation(teamScore int) string {
	switch {
	case teamScore >= 75:
		return "Go"
	case teamScore >= 55:
		return "Conditional Go"
	default:
		return "No-Go"
	}
}

func partnerReason(score int) string {
	switch {
	case score == 0:
		return "No relevant capability signal for this opportunity"
	case score < 15:
		return "Limited overlap with the opportunity's requirements"
	case score < 30:
		return "Moderate fit; covers part of the capability gap"
	default:
		return "Strong fit; covers key capability and agency gaps"
	}
}

func confidenceLevel(wordCount int) string {
	switch {
	case wordCount >= 150:
		return "High"
	case wordCount >= 50:
		return "Medium"
	default:
		return "Low"
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
