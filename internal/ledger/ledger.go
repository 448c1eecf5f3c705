// Package ledger is the append-only record store that gives the applier
// at-most-once semantics across sessions.
//
// Two CSV logs back it: one for live runs and one for dry runs, selected by
// session mode. On load both logs are scanned to rebuild two in-memory sets:
// applied (job ids with a confirmed live send) and seen (job ids a human has
// already evaluated). Auto-skip rows never enter the seen set, so a job
// filtered by system-side rules resurfaces if the filters change.
package ledger

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/martin/startup-applier/internal/types"
)

// Mode selects which log a session writes to.
type Mode string

const (
	ModeLive   Mode = "live"
	ModeDryRun Mode = "dry_run"
)

var header = []string{
	"job_id",
	"company_name",
	"job_title",
	"url",
	"company_website",
	"founders",
	"message_sent",
	"status",
	"timestamp",
	"notes",
}

// Column indexes into the CSV header.
const (
	colJobID  = 0
	colStatus = 7
	colNotes  = 9
)

// Ledger records application outcomes and answers applied/seen queries.
// Single-writer: concurrent processes are not supported.
type Ledger struct {
	livePath   string
	dryRunPath string
	writePath  string

	applied map[string]bool
	seen    map[string]bool
}

// Open loads both logs under dataDir and returns a ledger writing to the log
// selected by mode. Missing log files are not an error.
func Open(dataDir string, mode Mode) (*Ledger, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	l := &Ledger{
		livePath:   filepath.Join(dataDir, "applications.csv"),
		dryRunPath: filepath.Join(dataDir, "applications_dryrun.csv"),
		applied:    make(map[string]bool),
		seen:       make(map[string]bool),
	}
	if mode == ModeDryRun {
		l.writePath = l.dryRunPath
	} else {
		l.writePath = l.livePath
	}

	if err := l.scan(l.livePath, true); err != nil {
		return nil, err
	}
	if err := l.scan(l.dryRunPath, false); err != nil {
		return nil, err
	}

	log.Printf("[LEDGER] Loaded %d applied and %d seen job ids.", len(l.applied), len(l.seen))
	return l, nil
}

// scan rebuilds index sets from one log. Only the live log contributes to
// the applied set; both logs contribute to seen.
func (l *Ledger) scan(path string, live bool) error {
	rows, err := readRows(path)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if len(row) <= colNotes {
			continue
		}
		jobID := row[colJobID]
		if jobID == "" {
			continue
		}
		status := types.Status(row[colStatus])
		notes := row[colNotes]

		if live && status == types.StatusSent {
			l.applied[jobID] = true
		}

		switch status {
		case types.StatusDryRun:
			l.seen[jobID] = true
		case types.StatusSkipped:
			if !types.IsAutoSkipNote(notes) {
				l.seen[jobID] = true
			}
		}
	}
	return nil
}

func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger log %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse ledger log %s: %w", path, err)
	}
	if len(rows) > 0 && rows[0][colJobID] == "job_id" {
		rows = rows[1:] // header row
	}
	return rows, nil
}

// HasApplied reports whether a live application was sent for this job id.
func (l *Ledger) HasApplied(jobID string) bool {
	return l.applied[jobID]
}

// HasSeen reports whether a human already evaluated this job id.
func (l *Ledger) HasSeen(jobID string) bool {
	return l.seen[jobID]
}

// Record appends one application to the session's log and updates the
// in-memory sets. Rows are never rewritten or deleted.
func (l *Ledger) Record(app types.Application) error {
	f, err := os.OpenFile(l.writePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger log: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat ledger log: %w", err)
	}

	w := csv.NewWriter(f)
	if stat.Size() == 0 {
		if err := w.Write(header); err != nil {
			return fmt.Errorf("failed to write ledger header: %w", err)
		}
	}

	if err := w.Write(rowFor(app)); err != nil {
		return fmt.Errorf("failed to write ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush ledger row: %w", err)
	}

	jobID := app.Job.JobID
	if l.writePath == l.livePath && app.Status == types.StatusSent {
		l.applied[jobID] = true
	}
	switch app.Status {
	case types.StatusDryRun:
		l.seen[jobID] = true
	case types.StatusSkipped:
		if !types.IsAutoSkipNote(app.Notes) {
			l.seen[jobID] = true
		}
	}

	log.Printf("[LEDGER] Recorded %s at %s [%s]",
		app.Job.Title, app.Job.Company.Name, app.Status)
	return nil
}

// rowFor flattens an application, denormalizing the company summary.
func rowFor(app types.Application) []string {
	names := make([]string, 0, len(app.Job.Company.Founders))
	for _, f := range app.Job.Company.Founders {
		names = append(names, f.Name)
	}

	return []string{
		app.Job.JobID,
		app.Job.Company.Name,
		app.Job.Title,
		app.Job.URL,
		app.Job.Company.Website,
		strings.Join(names, ", "),
		app.Message,
		string(app.Status),
		app.Timestamp.Format(time.RFC3339),
		app.Notes,
	}
}

// Summary returns status counts across both logs.
func (l *Ledger) Summary() (map[types.Status]int, error) {
	counts := make(map[types.Status]int)
	for _, path := range []string{l.livePath, l.dryRunPath} {
		rows, err := readRows(path)
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			if len(row) > colStatus {
				counts[types.Status(row[colStatus])]++
			}
		}
	}
	return counts, nil
}
