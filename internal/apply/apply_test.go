package apply

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/martin/startup-applier/internal/browser"
	"github.com/martin/startup-applier/internal/types"
)

// fakePage scripts per-selector outcomes for the apply workflow.
type fakePage struct {
	alreadyApplied bool
	clickErrs      map[string]error
	waitVisibleErr error
	waitGoneErr    error
	fillErr        error

	clicked          []string
	clickedIfPresent []string
	filled           string
}

func (f *fakePage) Navigate(context.Context, string) error  { return nil }
func (f *fakePage) BodyText(context.Context) (string, error) { return "", nil }
func (f *fakePage) HTML(context.Context) (string, error)     { return "", nil }
func (f *fakePage) Height(context.Context) (int, error)      { return 0, nil }
func (f *fakePage) ScrollToBottom(context.Context) error     { return nil }

func (f *fakePage) Click(_ context.Context, sel string, _ time.Duration) error {
	if err := f.clickErrs[sel]; err != nil {
		return err
	}
	f.clicked = append(f.clicked, sel)
	return nil
}

func (f *fakePage) ClickIfPresent(_ context.Context, sel string) bool {
	f.clickedIfPresent = append(f.clickedIfPresent, sel)
	return true
}

func (f *fakePage) WaitVisible(_ context.Context, sel string, _ time.Duration) error {
	return f.waitVisibleErr
}

func (f *fakePage) WaitGone(_ context.Context, sel string, _ time.Duration) error {
	return f.waitGoneErr
}

func (f *fakePage) Exists(_ context.Context, sel string) bool {
	return sel == browser.SelAlreadyApplied && f.alreadyApplied
}

func (f *fakePage) Fill(_ context.Context, _ string, text string, _ time.Duration) error {
	if f.fillErr != nil {
		return f.fillErr
	}
	f.filled = text
	return nil
}

func testJob() types.Job {
	return types.Job{
		JobID: "aB123",
		Title: "Senior Engineer",
		Company: types.Company{
			Name: "Acme Labs",
		},
		URL: "https://www.workatastartup.com/jobs/aB123",
	}
}

func TestApplyAlreadyApplied(t *testing.T) {
	page := &fakePage{alreadyApplied: true}
	applicant := NewApplicant(page, false)

	app := applicant.Apply(context.Background(), testJob(), "hello")

	assert.Equal(t, types.StatusSkipped, app.Status)
	assert.Equal(t, types.NoteAlreadyApplied, app.Notes)
	assert.Empty(t, page.clicked, "nothing is clicked on an already-applied page")
	assert.False(t, app.Timestamp.IsZero())
}

func TestApplyNoApplyButton(t *testing.T) {
	page := &fakePage{clickErrs: map[string]error{
		browser.SelApplyButton: errors.New("timeout"),
	}}
	applicant := NewApplicant(page, false)

	app := applicant.Apply(context.Background(), testJob(), "hello")

	assert.Equal(t, types.StatusError, app.Status)
	assert.Equal(t, types.NoteNoApplyButton, app.Notes)
}

func TestApplyModalNotOpened(t *testing.T) {
	page := &fakePage{waitVisibleErr: errors.New("timeout")}
	applicant := NewApplicant(page, false)

	app := applicant.Apply(context.Background(), testJob(), "hello")

	assert.Equal(t, types.StatusError, app.Status)
	assert.Equal(t, types.NoteModalNotOpened, app.Notes)
}

func TestApplyFillFailure(t *testing.T) {
	page := &fakePage{fillErr: errors.New("no textarea")}
	applicant := NewApplicant(page, false)

	app := applicant.Apply(context.Background(), testJob(), "hello")

	assert.Equal(t, types.StatusError, app.Status)
	assert.Equal(t, types.NoteSubmitFailed, app.Notes)
	assert.Contains(t, page.clickedIfPresent, browser.SelCloseButton, "modal is closed on failure")
}

func TestApplyDryRun(t *testing.T) {
	page := &fakePage{}
	applicant := NewApplicant(page, true)

	app := applicant.Apply(context.Background(), testJob(), "hello")

	assert.Equal(t, types.StatusDryRun, app.Status)
	assert.Empty(t, app.Notes)
	assert.Equal(t, "hello", page.filled, "the modal is filled even in dry-run mode")
	assert.NotContains(t, page.clicked, browser.SelSendButton, "dry run never submits")
	assert.Contains(t, page.clickedIfPresent, browser.SelCloseButton)
}

func TestApplySent(t *testing.T) {
	page := &fakePage{}
	applicant := NewApplicant(page, false)

	app := applicant.Apply(context.Background(), testJob(), "hello")

	assert.Equal(t, types.StatusSent, app.Status)
	assert.Empty(t, app.Notes)
	assert.Equal(t, "hello", page.filled)
	assert.Contains(t, page.clicked, browser.SelSendButton)
}

func TestApplySentWhenModalLingers(t *testing.T) {
	// The modal never closing cannot be distinguished from a slow
	// success; the send is assumed to have gone through rather than
	// risking a duplicate on retry.
	page := &fakePage{waitGoneErr: errors.New("still visible")}
	applicant := NewApplicant(page, false)

	app := applicant.Apply(context.Background(), testJob(), "hello")

	assert.Equal(t, types.StatusSent, app.Status)
}

func TestApplySendClickFails(t *testing.T) {
	page := &fakePage{clickErrs: map[string]error{
		browser.SelSendButton: errors.New("timeout"),
	}}
	applicant := NewApplicant(page, false)

	app := applicant.Apply(context.Background(), testJob(), "hello")

	assert.Equal(t, types.StatusError, app.Status)
	assert.Equal(t, types.NoteSubmitFailed, app.Notes)
	assert.Contains(t, page.clickedIfPresent, browser.SelCloseButton)
}
