// Package types defines the core data model shared across the applier:
// jobs, companies, founders, applications, and listing stubs.
package types

import (
	"strings"
	"time"
)

// Status is the terminal outcome of one application attempt.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusError   Status = "error"
	StatusDryRun  Status = "dry_run"
)

// Machine-readable note values recorded with non-SENT outcomes.
const (
	NoteAlreadyApplied = "already_applied_on_site"
	NoteNoApplyButton  = "no_apply_button"
	NoteModalNotOpened = "modal_not_opened"
	NoteSubmitFailed   = "submit_failed"
	NoteUserSkipped    = "user_skipped"

	// NoteLocationFiltered prefixes auto-skip notes of the form
	// "location_filtered: <location>".
	NoteLocationFiltered = "location_filtered"
)

// autoSkipPrefixes are notes produced by system-side filters without human
// review. Entries carrying them must never enter the ledger's seen set.
var autoSkipPrefixes = []string{
	NoteLocationFiltered,
	NoteAlreadyApplied,
}

// IsAutoSkipNote reports whether a note denotes an automatic pre-filter skip
// rather than a human decision.
func IsAutoSkipNote(note string) bool {
	for _, prefix := range autoSkipPrefixes {
		if strings.HasPrefix(note, prefix) {
			return true
		}
	}
	return false
}

// Founder is one founder extracted from a company page. Immutable once built.
type Founder struct {
	Name     string
	LinkedIn string
}

// Company holds everything recoverable about a company from one job detail
// page. Each scrape re-derives it; companies are not shared across jobs.
type Company struct {
	Name        string
	Description string
	YCBatch     string
	Industry    string
	Size        string
	URL         string
	Website     string
	Founders    []Founder
}

// Job is one fully scraped job posting.
type Job struct {
	JobID        string
	Title        string
	Company      Company
	URL          string
	Description  string
	Requirements string
	Location     string
	JobType      string
	SalaryRange  string
	CultureNotes string

	// Populated by the summarization step; optional.
	AboutSummary       string
	DescriptionSummary string
}

// Stub is a lightweight job reference produced by listing discovery,
// before full detail extraction.
type Stub struct {
	JobID        string
	Title        string
	CompanyName  string
	CompanyBlurb string
	URL          string
}

// Application records the terminal outcome of one apply attempt.
// Created once, never mutated, persisted immediately.
type Application struct {
	Job       Job
	Message   string
	Status    Status
	Timestamp time.Time
	Notes     string
}

// NewApplication builds an Application stamped with the current time.
func NewApplication(job Job, message string, status Status, notes string) Application {
	return Application{
		Job:       job,
		Message:   message,
		Status:    status,
		Timestamp: time.Now(),
		Notes:     notes,
	}
}
