package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobTitle(t *testing.T) {
	tests := []struct {
		name     string
		jobURL   string
		company  string
		headings []string
		expected string
	}{
		{
			"Skips company name heading",
			"https://www.workatastartup.com/jobs/84041",
			"Acme Labs",
			[]string{"Acme Labs", "Senior Backend Engineer", "About"},
			"Senior Backend Engineer",
		},
		{
			"Skips section-label headings",
			"https://www.workatastartup.com/jobs/84041",
			"Acme Labs",
			[]string{"About", "Requirements", "Platform Engineer"},
			"Platform Engineer",
		},
		{
			"Skips overlong headings",
			"https://www.workatastartup.com/jobs/84041",
			"Acme Labs",
			[]string{strings.Repeat("x", 120), "Data Engineer"},
			"Data Engineer",
		},
		{
			"Slug fallback",
			"https://www.workatastartup.com/companies/acme-labs/jobs/aB123-senior-backend-engineer",
			"Acme Labs",
			nil,
			"Senior Backend Engineer",
		},
		{
			"Nothing usable",
			"https://www.workatastartup.com/jobs/84041",
			"Acme Labs",
			nil,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &Snapshot{Headings: tt.headings}
			assert.Equal(t, tt.expected, JobTitle(tt.jobURL, tt.company, snap))
		})
	}
}
