package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyName(t *testing.T) {
	tests := []struct {
		name     string
		jobURL   string
		snap     *Snapshot
		expected string
	}{
		{
			"URL slug wins",
			"https://www.workatastartup.com/companies/acme-labs/jobs/aB123-senior-engineer",
			&Snapshot{Text: "Companies / Other Corp\nAcme Labs (W24)"},
			"Acme Labs",
		},
		{
			"Breadcrumb when URL has no company segment",
			"https://www.workatastartup.com/jobs/84041",
			&Snapshot{Text: "Companies / Acme Labs (W24)\nSenior Engineer"},
			"Acme Labs",
		},
		{
			"Batch-code parenthetical",
			"https://www.workatastartup.com/jobs/84041",
			&Snapshot{Text: "Acme Labs (W24) is hiring engineers."},
			"Acme Labs",
		},
		{
			"First non-generic heading",
			"https://www.workatastartup.com/jobs/84041",
			&Snapshot{Text: "nothing useful here", Headings: []string{"Companies", "Acme Labs"}},
			"Acme Labs",
		},
		{
			"All strategies fail",
			"https://www.workatastartup.com/jobs/84041",
			&Snapshot{Text: "nothing useful here"},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompanyName(tt.jobURL, tt.snap))
		})
	}
}

func TestYCBatch(t *testing.T) {
	assert.Equal(t, "W24", YCBatch("Acme Labs (W24) builds tools."))
	assert.Equal(t, "S21", YCBatch("Backed since (S21)."))
	assert.Equal(t, "", YCBatch("No batch code anywhere."))
}

func TestCompanySize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"Range with employees", "We are 11-50 employees worldwide.", "11-50"},
		{"Labeled size", "Team size: 12", "12"},
		{"Plus-suffixed count", "over 100+ engineers on staff", "100+"},
		{"No size", "a small but mighty team", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CompanySize(tt.text))
		})
	}
}

func TestIndustry(t *testing.T) {
	t.Run("Explicit label wins", func(t *testing.T) {
		assert.Equal(t, "Fintech infrastructure", Industry("Industry: Fintech infrastructure\nmore text"))
	})
	t.Run("Whitelist scan caps at three", func(t *testing.T) {
		got := Industry("We are a B2B SaaS company building AI for climate.")
		assert.Equal(t, "B2B, SaaS, AI", got)
	})
	t.Run("No industry", func(t *testing.T) {
		assert.Equal(t, "", Industry("we make things"))
	})
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Acme Labs", TitleCase("acme labs"))
	assert.Equal(t, "Senior Backend Engineer", TitleCase("SENIOR backend engineer"))
	assert.Equal(t, "Éclair Labs", TitleCase("éclair labs"), "multibyte leading runes")
	assert.Equal(t, "", TitleCase(""))
}
