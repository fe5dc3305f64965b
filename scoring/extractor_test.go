package scoring

import (
	"testing"

	"capturehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractCapabilitiesNAICS(t *testing.T) {
	kw := DefaultKeywords()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "distinct codes, duplicates collapsed",
			text: "Primary NAICS 541512, also 541512 and 541519.",
			want: []string{"541512", "541519"},
		},
		{
			name: "seven digit run is not a code",
			text: "reference number 5415123",
			want: nil,
		},
		{
			name: "five digits is not a code",
			text: "code 54151",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCapabilities(tt.text, kw).NAICS)
		})
	}
}

func TestExtractCapabilitiesAgenciesAndSkills(t *testing.T) {
	kw := DefaultKeywords()

	text := "Over a decade supporting the department of defense and DHS with " +
		"cloud migration and devsecops delivery."
	ex := ExtractCapabilities(text, kw)

	// Canonical list entries are recorded, not the raw substrings
	assert.Equal(t, []string{"Department of Defense", "DHS"}, ex.Agencies)
	assert.Equal(t, []string{"cloud migration", "devsecops"}, ex.Skills)
}

func TestExtractCapabilitiesEmptyInput(t *testing.T) {
	kw := DefaultKeywords()

	for _, text := range []string{"", "   ", "\n\t"} {
		ex := ExtractCapabilities(text, kw)
		assert.Empty(t, ex.NAICS)
		assert.Empty(t, ex.Agencies)
		assert.Empty(t, ex.Skills)
	}
}

func TestUnionStrings(t *testing.T) {
	dst := []string{"Cloud", "DevSecOps"}
	src := []string{"cloud", "Agile", "agile", "Zero Trust"}

	got := UnionStrings(dst, src)
	assert.Equal(t, []string{"Cloud", "DevSecOps", "Agile", "Zero Trust"}, got)

	// Re-applying the same source changes nothing
	assert.Equal(t, got, UnionStrings(got, src))
}

func TestMergeExtractionIsAdditive(t *testing.T) {
	partner := models.Partner{
		Skills:     []string{"agile"},
		Agencies:   []string{"GSA"},
		NAICSCodes: []string{"541511"},
	}
	ex := Extraction{
		NAICS:    []string{"541511", "541512"},
		Agencies: []string{"gsa", "DHS"},
		Skills:   []string{"cloud migration"},
	}

	MergeExtraction(&partner, ex)

	require.Equal(t, []string{"541511", "541512"}, partner.NAICSCodes)
	require.Equal(t, []string{"GSA", "DHS"}, partner.Agencies)
	require.Equal(t, []string{"agile", "cloud migration"}, partner.Skills)

	// Idempotent across repeat uploads of the same document
	MergeExtraction(&partner, ex)
	assert.Equal(t, []string{"541511", "541512"}, partner.NAICSCodes)
	assert.Equal(t, []string{"GSA", "DHS"}, partner.Agencies)
	assert.Equal(t, []string{"agile", "cloud migration"}, partner.Skills)
}
