package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/startup-applier/internal/types"
)

func testApp(jobID string, status types.Status, notes string) types.Application {
	return types.Application{
		Job: types.Job{
			JobID: jobID,
			Title: "Senior Engineer",
			URL:   "https://www.workatastartup.com/jobs/" + jobID,
			Company: types.Company{
				Name:    "Acme Labs",
				Website: "https://acme.dev",
				Founders: []types.Founder{
					{Name: "Jane Smith"},
					{Name: "John Doe"},
				},
			},
		},
		Message:   "hello, team",
		Status:    status,
		Timestamp: time.Now(),
		Notes:     notes,
	}
}

func TestRecordSentMarksApplied(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(dir, ModeLive)
	require.NoError(t, err)

	require.NoError(t, l.Record(testApp("aB123", types.StatusSent, "")))
	assert.True(t, l.HasApplied("aB123"))

	// The applied set survives a reopen.
	reloaded, err := Open(dir, ModeLive)
	require.NoError(t, err)
	assert.True(t, reloaded.HasApplied("aB123"))
	assert.False(t, reloaded.HasApplied("other"))
}

func TestAutoSkipNeverEntersSeen(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(dir, ModeLive)
	require.NoError(t, err)

	require.NoError(t, l.Record(testApp("aB123", types.StatusSkipped, types.NoteLocationFiltered+": Berlin")))
	require.NoError(t, l.Record(testApp("cD456", types.StatusSkipped, types.NoteAlreadyApplied)))

	assert.False(t, l.HasSeen("aB123"), "location-filtered jobs must resurface")
	assert.False(t, l.HasSeen("cD456"))

	reloaded, err := Open(dir, ModeLive)
	require.NoError(t, err)
	assert.False(t, reloaded.HasSeen("aB123"))
	assert.False(t, reloaded.HasSeen("cD456"))
}

func TestUserSkipEntersSeen(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(dir, ModeLive)
	require.NoError(t, err)

	require.NoError(t, l.Record(testApp("aB123", types.StatusSkipped, types.NoteUserSkipped)))
	assert.True(t, l.HasSeen("aB123"))
	assert.False(t, l.HasApplied("aB123"), "a skip is never an application")

	reloaded, err := Open(dir, ModeLive)
	require.NoError(t, err)
	assert.True(t, reloaded.HasSeen("aB123"))
}

func TestDryRunEntersSeenNotApplied(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(dir, ModeDryRun)
	require.NoError(t, err)

	require.NoError(t, l.Record(testApp("aB123", types.StatusDryRun, "")))
	assert.True(t, l.HasSeen("aB123"))
	assert.False(t, l.HasApplied("aB123"), "dry-run sends never count as applied")

	// A later live-mode session still sees the dry-run evaluation.
	reloaded, err := Open(dir, ModeLive)
	require.NoError(t, err)
	assert.True(t, reloaded.HasSeen("aB123"))
	assert.False(t, reloaded.HasApplied("aB123"))
}

func TestDryRunSentNeverMarksApplied(t *testing.T) {
	dir := t.TempDir()

	// A SENT row in the dry-run log must not poison the applied set.
	l, err := Open(dir, ModeDryRun)
	require.NoError(t, err)
	require.NoError(t, l.Record(testApp("aB123", types.StatusSent, "")))

	reloaded, err := Open(dir, ModeLive)
	require.NoError(t, err)
	assert.False(t, reloaded.HasApplied("aB123"))
}

func TestSummaryCountsAcrossLogs(t *testing.T) {
	dir := t.TempDir()

	live, err := Open(dir, ModeLive)
	require.NoError(t, err)
	require.NoError(t, live.Record(testApp("a1", types.StatusSent, "")))
	require.NoError(t, live.Record(testApp("a2", types.StatusSkipped, types.NoteUserSkipped)))
	require.NoError(t, live.Record(testApp("a3", types.StatusError, types.NoteSubmitFailed)))

	dry, err := Open(dir, ModeDryRun)
	require.NoError(t, err)
	require.NoError(t, dry.Record(testApp("a4", types.StatusDryRun, "")))

	counts, err := dry.Summary()
	require.NoError(t, err)
	assert.Equal(t, 1, counts[types.StatusSent])
	assert.Equal(t, 1, counts[types.StatusSkipped])
	assert.Equal(t, 1, counts[types.StatusError])
	assert.Equal(t, 1, counts[types.StatusDryRun])
}

func TestOpenMissingLogsIsFine(t *testing.T) {
	l, err := Open(t.TempDir(), ModeLive)
	require.NoError(t, err)
	assert.False(t, l.HasApplied("anything"))
	assert.False(t, l.HasSeen("anything"))
}

func TestRecordPreservesMessageAndFounders(t *testing.T) {
	dir := t.TempDir()

	l, err := Open(dir, ModeLive)
	require.NoError(t, err)
	app := testApp("aB123", types.StatusSent, "")
	app.Message = "a message with, commas and\nnewlines"
	require.NoError(t, l.Record(app))

	// The row round-trips through the CSV layer intact.
	reloaded, err := Open(dir, ModeLive)
	require.NoError(t, err)
	assert.True(t, reloaded.HasApplied("aB123"))
}
