package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExtractSection(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		labels   []string
		expected string
	}{
		{
			"Header alone on its line",
			"About\nWe build tools for X.\nRequirements\n5 years of production Python experience.",
			companyDescriptionLabels,
			"We build tools for X.",
		},
		{
			"Stops at the next boundary header",
			"About\nWe build tools for X.\nBenefits\nFree lunch every day.",
			companyDescriptionLabels,
			"We build tools for X.",
		},
		{
			"Inline colon shape",
			"Requirements: 5 years of production Python experience.",
			requirementLabels,
			"5 years of production Python experience.",
		},
		{
			"Later label wins when first block too short",
			"Requirements\nnone\nQualifications\nFive years of Python and Go experience.",
			requirementLabels,
			"Five years of Python and Go experience.",
		},
		{
			"No matching header",
			"Just some unstructured text about nothing in particular.",
			requirementLabels,
			"",
		},
		{
			"Block at or under ten characters rejected",
			"Requirements\n5 years.",
			requirementLabels,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractSection(tt.text, tt.labels))
		})
	}
}

func TestExtractSectionTruncates(t *testing.T) {
	long := strings.Repeat("All work and no play makes for dull code. ", 40)
	text := "About\n" + long
	got := ExtractSection(text, companyDescriptionLabels)
	assert.Len(t, got, maxSectionLength)
}

func TestExtractSectionTruncatesOnRuneBoundary(t *testing.T) {
	// Three-byte runes put the length cap mid-character; the cut must back
	// off to the previous rune start instead of leaving a broken byte.
	long := strings.Repeat("€", 400)
	got := ExtractSection("About\n"+long, companyDescriptionLabels)

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), maxSectionLength)
	assert.Greater(t, len(got), maxSectionLength-utf8.UTFMax)
}

func TestExtractSectionEndToEnd(t *testing.T) {
	// A minimal two-section page resolves both fields independently.
	text := "About\nWe build tools for X.\nRequirements\n5 years of production Python experience."

	desc := Clean(ExtractSection(text, companyDescriptionLabels))
	reqs := Clean(ExtractSection(text, requirementLabels))

	assert.Equal(t, "We build tools for X.", desc)
	assert.Equal(t, "5 years of production Python experience.", reqs)
}
