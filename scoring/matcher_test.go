package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchKeywords(t *testing.T) {
	keywords := []string{"cloud", "aws", "kubernetes"}

	tests := []struct {
		name     string
		haystack string
		keywords []string
		want     []string
	}{
		{
			name:     "empty haystack",
			haystack: "",
			keywords: keywords,
			want:     nil,
		},
		{
			name:     "no keywords",
			haystack: "cloud migration project",
			keywords: nil,
			want:     nil,
		},
		{
			name:     "subset matches in list order",
			haystack: "kubernetes workloads in the cloud",
			keywords: keywords,
			want:     []string{"cloud", "kubernetes"},
		},
		{
			name:     "no overlap",
			haystack: "janitorial services contract",
			keywords: keywords,
			want:     nil,
		},
		{
			name:     "empty keyword entries are skipped",
			haystack: "anything at all",
			keywords: []string{"", "cloud"},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchKeywords(tt.haystack, tt.keywords))
		})
	}
}

func TestSignificantWordCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"only short words", "a of is to it", 0},
		{"mixed lengths", "a big cloud of it support", 4},
		{"extra whitespace", "  cloud   migration  ", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, significantWordCount(tt.text))
		})
	}
}
