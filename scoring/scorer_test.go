package scoring

import (
	"testing"

	"capturehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestContentQualityScore(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{0, 5},
		{9, 5},
		{10, 12},
		{49, 12},
		{50, 18},
		{149, 18},
		{150, 25},
		{1000, 25},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, contentQualityScore(tt.words), "words=%d", tt.words)
	}
}

func TestTeamRecommendationBands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{100, "Go"},
		{75, "Go"},
		{74, "Conditional Go"},
		{55, "Conditional Go"},
		{54, "No-Go"},
		{0, "No-Go"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, teamRecommendation(tt.score), "score=%d", tt.score)
	}
}

func TestConfidenceLevel(t *testing.T) {
	assert.Equal(t, "High", confidenceLevel(150))
	assert.Equal(t, "Medium", confidenceLevel(50))
	assert.Equal(t, "Low", confidenceLevel(49))
	assert.Equal(t, "Low", confidenceLevel(0))
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-5, 0, 100))
	assert.Equal(t, 100, clampInt(140, 0, 100))
	assert.Equal(t, 42, clampInt(42, 0, 100))
}

func TestScoreCompanyFit(t *testing.T) {
	s := NewScorer(DefaultKeywords())

	opp := "cloud migration for the navy using aws"
	company := "we provide aws and cloud services for the navy"

	result := s.Score(opp, company, nil)

	assert.Equal(t, 5, result.Breakdown.ContentQuality)
	assert.Equal(t, 5.0, result.Breakdown.TechnicalMatch)
	assert.Equal(t, 5, result.Breakdown.AgencyMatch)
	assert.Equal(t, 0, result.Breakdown.CertificationMatch)
	assert.Equal(t, 0, result.Breakdown.PastPerformance)
	assert.Equal(t, 15, result.CompanyScore)
	assert.Equal(t, 15, result.TeamScore)
	assert.Equal(t, "No-Go", result.TeamRecommendation)
	assert.Equal(t, "Low", result.Confidence)

	assert.Contains(t, result.Strengths, "Technology match: cloud")
	assert.Contains(t, result.Strengths, "Technology match: aws")
	assert.Contains(t, result.Strengths, "Agency relationship: navy")
	assert.Contains(t, result.Risks, "Opportunity description is thin; match confidence is reduced")
}

func TestScoreEmptyInputs(t *testing.T) {
	s := NewScorer(DefaultKeywords())

	result := s.Score("", "", nil)

	assert.Equal(t, 5, result.CompanyScore)
	assert.Equal(t, "No-Go", result.TeamRecommendation)
	assert.Contains(t, result.Risks, "Company capability statement is empty")
	assert.Empty(t, result.SuggestedPartners)
}

func TestScoreIsDeterministic(t *testing.T) {
	s := NewScorer(DefaultKeywords())

	opp := "devsecops and kubernetes support for the air force with fedramp hosting"
	company := "kubernetes and devsecops shop, fedramp authorized, air force past performance on time"
	partners := []models.Partner{
		{Model: gorm.Model{ID: 1}, Name: "Acme", PerformanceRating: 90,
			Capabilities: "full lifecycle program management and staffing services"},
	}

	first := s.Score(opp, company, partners)
	second := s.Score(opp, company, partners)
	assert.Equal(t, first, second)
}

func TestScorePartnerQualityBaseline(t *testing.T) {
	s := NewScorer(DefaultKeywords())

	opp := "general support services contract"
	company := "general support services provider for many customers"

	// Rich text, no gap keywords: pure rating baseline
	rich := models.Partner{PerformanceRating: 100,
		Capabilities: "full lifecycle program management and staffing services"}
	assert.Equal(t, 15, s.scorePartner(opp, company, rich))

	halfRated := rich
	halfRated.PerformanceRating = 50
	assert.Equal(t, 8, s.scorePartner(opp, company, halfRated))

	// Thin capability text eats the baseline
	thin := models.Partner{PerformanceRating: 100}
	assert.Equal(t, 5, s.scorePartner(opp, company, thin))
}

func TestScorePartnerGapFill(t *testing.T) {
	s := NewScorer(DefaultKeywords())

	opp := "cloud support for dhs operations"
	company := "we deliver cloud support"

	partner := models.Partner{
		Model:             gorm.Model{ID: 7},
		Name:              "BorderTech",
		PerformanceRating: 100,
		Capabilities:      "homeland security experts supporting dhs customers nationwide",
	}

	// 15 rating baseline plus one agency gap at weight 7
	assert.Equal(t, 22, s.scorePartner(opp, company, partner))

	result := s.Score(opp, company, []models.Partner{partner})
	require.Len(t, result.SuggestedPartners, 1)

	sp := result.SuggestedPartners[0]
	assert.Equal(t, uint(7), sp.PartnerID)
	assert.Equal(t, 13, sp.Score)
	assert.Equal(t, 40, sp.Probability)
	assert.Equal(t, "Moderate fit; covers part of the capability gap", sp.Reason)

	// Company fit 8, partner bonus 13
	assert.Equal(t, 8, result.CompanyScore)
	assert.Equal(t, 21, result.TeamScore)
}

func TestScoreKeepsTopThreePartners(t *testing.T) {
	s := NewScorer(DefaultKeywords())

	opp := "general support services contract"
	company := "general support services provider for many customers"
	text := "full lifecycle program management and staffing services"

	partners := []models.Partner{
		{Model: gorm.Model{ID: 1}, Name: "Alpha", PerformanceRating: 100, Capabilities: text},
		{Model: gorm.Model{ID: 2}, Name: "Bravo", PerformanceRating: 80, Capabilities: text},
		{Model: gorm.Model{ID: 3}, Name: "Charlie", PerformanceRating: 60, Capabilities: text},
		{Model: gorm.Model{ID: 4}, Name: "Delta", PerformanceRating: 10, Capabilities: text},
	}

	result := s.Score(opp, company, partners)
	require.Len(t, result.SuggestedPartners, 3)

	assert.Equal(t, "Alpha", result.SuggestedPartners[0].Name)
	assert.Equal(t, "Bravo", result.SuggestedPartners[1].Name)
	assert.Equal(t, "Charlie", result.SuggestedPartners[2].Name)
}

func TestScorePartnerTieKeepsInputOrder(t *testing.T) {
	s := NewScorer(DefaultKeywords())

	opp := "general support services contract"
	company := "general support services provider for many customers"
	text := "full lifecycle program management and staffing services"

	partners := []models.Partner{
		{Model: gorm.Model{ID: 1}, Name: "First", PerformanceRating: 90, Capabilities: text},
		{Model: gorm.Model{ID: 2}, Name: "Second", PerformanceRating: 90, Capabilities: text},
	}

	result := s.Score(opp, company, partners)
	require.Len(t, result.SuggestedPartners, 2)
	assert.Equal(t, "First", result.SuggestedPartners[0].Name)
	assert.Equal(t, "Second", result.SuggestedPartners[1].Name)
}

func TestPartnerReasonBands(t *testing.T) {
	assert.Equal(t, "No relevant capability signal for this opportunity", partnerReason(0))
	assert.Equal(t, "Limited overlap with the opportunity's requirements", partnerReason(14))
	assert.Equal(t, "Moderate fit; covers part of the capability gap", partnerReason(29))
	assert.Equal(t, "Strong fit; covers key capability and agency gaps", partnerReason(30))
}

func TestBuildOpportunityText(t *testing.T) {
	lead := models.Lead{
		Title:             "Cloud Migration IDIQ",
		Description:       "Lift and shift to AWS GovCloud",
		DealType:          "IDIQ",
		Sector:            "Federal",
		Department:        "DHS",
		OpportunityStatus: "Identified",
	}

	text := BuildOpportunityText(lead, []string{"attachment excerpt one", "attachment excerpt two"})

	assert.Contains(t, text, "Title: Cloud Migration IDIQ")
	assert.Contains(t, text, "Department: DHS")
	assert.Contains(t, text, "attachment excerpt two")
}
