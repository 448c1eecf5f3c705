package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoundersFromLinks(t *testing.T) {
	snap := &Snapshot{
		Links: []Link{
			{Href: "https://linkedin.com/in/jane", Text: "Jane Smith"},
			{Href: "https://linkedin.com/in/view", Text: "View Profile"},
			{Href: "https://linkedin.com/in/jane", Text: "Jane Smith"},
			{Href: "https://acme.dev", Text: "Acme"},
			{Href: "https://linkedin.com/in/john", Text: "John Doe"},
		},
	}

	founders := Founders(snap)

	assert.Len(t, founders, 2, "junk text, duplicates, and non-LinkedIn links are dropped")
	assert.Equal(t, "Jane Smith", founders[0].Name)
	assert.Equal(t, "https://linkedin.com/in/jane", founders[0].LinkedIn)
	assert.Equal(t, "John Doe", founders[1].Name)
}

func TestFoundersCappedAtFive(t *testing.T) {
	snap := &Snapshot{}
	names := []string{"Ann Able", "Ben Boone", "Cara Dean", "Dina Ernst", "Eve Field", "Finn Grant"}
	for i, name := range names {
		snap.Links = append(snap.Links, Link{
			Href: fmt.Sprintf("https://linkedin.com/in/f%d", i),
			Text: name,
		})
	}

	founders := Founders(snap)

	assert.Len(t, founders, 5)
	for i, f := range founders {
		assert.Equal(t, names[i], f.Name, "discovery order is preserved")
	}
}

func TestFoundersRegexFallback(t *testing.T) {
	snap := &Snapshot{Text: "Founded by Jane Smith and John Doe in 2021."}

	founders := Founders(snap)

	assert.Len(t, founders, 2)
	assert.Equal(t, "Jane Smith", founders[0].Name)
	assert.Empty(t, founders[0].LinkedIn)
	assert.Equal(t, "John Doe", founders[1].Name)
}

func TestFoundersEmpty(t *testing.T) {
	assert.Empty(t, Founders(&Snapshot{Text: "no founders mentioned"}))
}

func TestPlausibleFounderName(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"Jane Smith", true},
		{"Jane Ann Marie Smith", true},
		{"Jane", false},
		{"View Profile", false},
		{"Jane Smith3", false},
		{"One Two Three Four Five", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, plausibleFounderName(tt.input))
		})
	}
}
