package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty input", "", ""},
		{
			"Strips nav chrome phrases",
			"Companies\nWe build developer tools for data teams.\nSign up",
			"We build developer tools for data teams.",
		},
		{
			"Drops short single-word nav lines",
			"Go\nWe build developer tools for data teams.\nJobs",
			"We build developer tools for data teams.",
		},
		{
			"Keeps allow-listed short words",
			"Remote\nWe build developer tools for data teams.",
			"Remote\nWe build developer tools for data teams.",
		},
		{
			"Keeps short lines containing digits",
			"B2B\nWe build tools for fintech teams.",
			"B2B\nWe build tools for fintech teams.",
		},
		{
			"Trims whitespace and drops blank lines",
			"  We build tools for finance.  \n\n   \nAnd we like it.",
			"We build tools for finance.\nAnd we like it.",
		},
		{"Too little survives", "Hello there", ""},
		{"Only chrome phrases", "Companies\nSign up\nY Combinator", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	input := "Companies\nRemote\nWe build developer tools for data teams.\nSign up\nAnd we enjoy the work."
	once := Clean(input)
	assert.Equal(t, once, Clean(once), "cleaning twice should change nothing")
}
