package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyWebsite(t *testing.T) {
	tests := []struct {
		name     string
		links    []Link
		expected string
	}{
		{
			"Icon-row adjacency beats a labeled link",
			[]Link{
				{Href: "https://github.com/acme", Text: ""},
				{Href: "https://acme.dev", Text: ""},
				{Href: "https://linkedin.com/company/acme", Text: ""},
				{Href: "https://other.example.com", Text: "Website"},
			},
			"https://acme.dev",
		},
		{
			"Labeled link when no icon row",
			[]Link{
				{Href: "https://news.ycombinator.com", Text: "YC"},
				{Href: "https://acme.dev", Text: "Website"},
			},
			"https://acme.dev",
		},
		{
			"Bare-domain link text",
			[]Link{
				{Href: "https://news.ycombinator.com", Text: "YC"},
				{Href: "https://acme.dev", Text: "acme.dev"},
			},
			"https://acme.dev",
		},
		{
			"Excluded domains never win",
			[]Link{
				{Href: "https://linkedin.com/company/acme", Text: "Website"},
				{Href: "https://lever.co/acme", Text: "lever.co"},
			},
			"",
		},
		{"No links", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompanyWebsite(&Snapshot{Links: tt.links}))
		})
	}
}
