package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAutoSkipNote(t *testing.T) {
	tests := []struct {
		note     string
		expected bool
	}{
		{NoteLocationFiltered, true},
		{NoteLocationFiltered + ": Berlin, Germany", true},
		{NoteAlreadyApplied, true},
		{NoteUserSkipped, false},
		{NoteSubmitFailed, false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAutoSkipNote(tt.note))
		})
	}
}

func TestNewApplicationStampsTimestamp(t *testing.T) {
	app := NewApplication(Job{JobID: "aB123"}, "hello", StatusSent, "")

	assert.Equal(t, "aB123", app.Job.JobID)
	assert.Equal(t, StatusSent, app.Status)
	assert.False(t, app.Timestamp.IsZero())
}
