// Package extract recovers structured job and company records from one
// rendered Work at a Startup detail page.
//
// The target markup is unstable and unversioned, so every field is recovered
// by an ordered chain of fault-tolerant strategies: cheap reliable signals
// first, regex scans of the raw text last. Extraction never fails; an empty
// string is always a legal answer and downstream code branches on emptiness.
package extract

import (
	"regexp"

	"github.com/martin/startup-applier/internal/types"
)

var jobIDPattern = regexp.MustCompile(`/jobs/([A-Za-z0-9]+)`)

// JobID derives the stable posting identifier from a detail URL like
// /companies/foo/jobs/2B4RxLG-title or /jobs/84041.
func JobID(url string) string {
	if m := jobIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// Extract converts one rendered detail page into a Job. Every field defaults
// to the empty string (or empty list) when no strategy succeeds.
func Extract(jobURL string, snap *Snapshot) types.Job {
	companyName := CompanyName(jobURL, snap)

	company := types.Company{
		Name:        companyName,
		Description: Clean(ExtractSection(snap.Text, companyDescriptionLabels)),
		YCBatch:     YCBatch(snap.Text),
		Industry:    Industry(snap.Text),
		Size:        CompanySize(snap.Text),
		URL:         jobURL,
		Website:     CompanyWebsite(snap),
		Founders:    Founders(snap),
	}

	meta := ExtractMetadata(snap)

	return types.Job{
		JobID:        JobID(jobURL),
		Title:        JobTitle(jobURL, companyName, snap),
		Company:      company,
		URL:          jobURL,
		Description:  Clean(ExtractSection(snap.Text, roleDescriptionLabels)),
		Requirements: Clean(ExtractSection(snap.Text, requirementLabels)),
		Location:     meta.Location,
		JobType:      meta.JobType,
		SalaryRange:  meta.Salary,
		CultureNotes: Clean(ExtractSection(snap.Text, cultureLabels)),
	}
}
