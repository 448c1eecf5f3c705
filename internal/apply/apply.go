// Package apply drives one job through the apply workflow on its detail
// page: pre-check, apply click, modal fill, and submission.
//
// Every invocation terminates in exactly one Application; UI elements that
// fail to appear within their bounded waits map to ERROR outcomes with a
// machine-readable note, never to a raised error.
package apply

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/martin/startup-applier/internal/browser"
	"github.com/martin/startup-applier/internal/types"
)

// Bounded waits for each workflow step.
const (
	applyButtonWait = 5 * time.Second
	modalWait       = 5 * time.Second
	textareaWait    = 3 * time.Second
	sendButtonWait  = 3 * time.Second
	modalCloseWait  = 5 * time.Second
)

// Applicant executes the apply flow on a job detail page.
type Applicant struct {
	page   browser.Page
	dryRun bool
}

// NewApplicant returns an Applicant. In dry-run mode the modal is filled and
// closed without submitting.
func NewApplicant(page browser.Page, dryRun bool) *Applicant {
	return &Applicant{page: page, dryRun: dryRun}
}

// IsAlreadyApplied checks the page-level already-applied indicator. Safe to
// call repeatedly; it has no side effects.
func (a *Applicant) IsAlreadyApplied(ctx context.Context) bool {
	return a.page.Exists(ctx, browser.SelAlreadyApplied)
}

// Apply runs the full flow: already-applied check, apply click, modal wait,
// message fill, then dry-run close or submit. Always returns exactly one
// Application with a terminal status.
func (a *Applicant) Apply(ctx context.Context, job types.Job, message string) types.Application {
	if a.IsAlreadyApplied(ctx) {
		log.Printf("[APPLY] Already applied to %s at %s.", job.Title, job.Company.Name)
		return types.NewApplication(job, message, types.StatusSkipped, types.NoteAlreadyApplied)
	}

	if err := a.page.Click(ctx, browser.SelApplyButton, applyButtonWait); err != nil {
		log.Printf("[APPLY] No Apply button for %s: %v", job.Title, err)
		return types.NewApplication(job, message, types.StatusError, types.NoteNoApplyButton)
	}

	if err := a.page.WaitVisible(ctx, browser.SelModal, modalWait); err != nil {
		log.Printf("[APPLY] Apply modal did not open for %s: %v", job.Title, err)
		return types.NewApplication(job, message, types.StatusError, types.NoteModalNotOpened)
	}

	// An unfilled message must never be submitted, so a fill failure is a
	// hard fault rather than a swallowed one.
	if err := a.fillMessage(ctx, message); err != nil {
		log.Printf("[APPLY] Failed to fill message for %s: %v", job.Title, err)
		a.closeModal(ctx)
		return types.NewApplication(job, message, types.StatusError, types.NoteSubmitFailed)
	}

	if a.dryRun {
		log.Printf("[APPLY] Dry run: not sending application to %s.", job.Company.Name)
		a.closeModal(ctx)
		return types.NewApplication(job, message, types.StatusDryRun, "")
	}

	if err := a.submit(ctx); err != nil {
		log.Printf("[APPLY] Submit failed for %s: %v", job.Title, err)
		a.closeModal(ctx)
		return types.NewApplication(job, message, types.StatusError, types.NoteSubmitFailed)
	}

	log.Printf("[APPLY] Application sent to %s at %s.", job.Title, job.Company.Name)
	return types.NewApplication(job, message, types.StatusSent, "")
}

func (a *Applicant) fillMessage(ctx context.Context, message string) error {
	if err := a.page.Fill(ctx, browser.SelModalTextarea, message, textareaWait); err != nil {
		return fmt.Errorf("textarea fill failed: %w", err)
	}
	return nil
}

// submit clicks Send and waits for the modal to close as the success signal.
// When the modal never closes we cannot distinguish a slow success from a
// silent failure, and the send has very likely gone through; report success
// rather than risking a duplicate application on retry.
func (a *Applicant) submit(ctx context.Context) error {
	if err := a.page.Click(ctx, browser.SelSendButton, sendButtonWait); err != nil {
		return fmt.Errorf("send click failed: %w", err)
	}

	if err := a.page.WaitGone(ctx, browser.SelModal, modalCloseWait); err != nil {
		log.Printf("[APPLY] Modal still visible after submit; assuming sent.")
	}
	return nil
}

// closeModal leaves the page in a recoverable state after a dry run or a
// failed submission.
func (a *Applicant) closeModal(ctx context.Context) {
	a.page.ClickIfPresent(ctx, browser.SelCloseButton)
}
