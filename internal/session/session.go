// Package session orchestrates one application run end to end: discovery,
// ledger filtering, posting selection, detail extraction, message
// generation, review, submission, and recording.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/martin/startup-applier/internal/apply"
	"github.com/martin/startup-applier/internal/browser"
	"github.com/martin/startup-applier/internal/config"
	"github.com/martin/startup-applier/internal/filters"
	"github.com/martin/startup-applier/internal/ledger"
	"github.com/martin/startup-applier/internal/llm"
	"github.com/martin/startup-applier/internal/review"
	"github.com/martin/startup-applier/internal/scrape"
	"github.com/martin/startup-applier/internal/types"
)

// errLedgerWrite marks a failed ledger append. An outcome that is not
// persisted would resurface the job next run, so these end the session
// instead of being skipped past like per-job faults.
var errLedgerWrite = errors.New("ledger write failed")

// Options control one session run.
type Options struct {
	DryRun     bool
	IgnoreSeen bool // filter by applied only, resurfacing seen jobs
	MaxApps    int  // overrides config when > 0
}

// Session wires the pipeline components together for one run.
type Session struct {
	cfg       *config.Config
	page      browser.Page
	ledger    *ledger.Ledger
	generator *llm.Generator
	reviewer  *review.Reviewer
	opts      Options

	runID   string
	limiter *rate.Limiter
}

// New assembles a Session from already-constructed components.
func New(cfg *config.Config, page browser.Page, led *ledger.Ledger, gen *llm.Generator, rev *review.Reviewer, opts Options) *Session {
	// One application per DelayMinSeconds at most; the random jitter on
	// top of this supplies the human-looking variance.
	interval := time.Duration(cfg.Settings.DelayMinSeconds * float64(time.Second))
	if interval <= 0 {
		interval = time.Second
	}

	return &Session{
		cfg:       cfg,
		page:      page,
		ledger:    led,
		generator: gen,
		reviewer:  rev,
		opts:      opts,
		runID:     uuid.NewString(),
		limiter:   rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Run executes the full session loop and prints a summary at the end.
func (s *Session) Run(ctx context.Context) error {
	// Tag every log line with the run id so interleaved session logs in
	// the data dir stay attributable.
	log.SetPrefix(fmt.Sprintf("run=%s ", s.runID[:8]))
	defer log.SetPrefix("")

	log.Printf("[SESSION] Starting run %s (dry_run=%v)", s.runID, s.opts.DryRun)

	maxApps := s.cfg.Settings.MaxApplications
	if s.opts.MaxApps > 0 {
		maxApps = s.opts.MaxApps
	}

	searchURL := filters.BuildJobsURL(s.cfg.Filters)
	log.Printf("[SESSION] Filtered listing URL: %s", searchURL)

	// Fetch extra stubs to absorb ledger and location skips.
	discoverer := scrape.NewDiscoverer(s.page)
	stubs, err := discoverer.Discover(ctx, searchURL, maxApps*3)
	if err != nil {
		return fmt.Errorf("listing discovery failed: %w", err)
	}
	if len(stubs) == 0 {
		log.Printf("[SESSION] No jobs found. Check the search filters.")
		return nil
	}

	fresh := s.filterStubs(stubs)
	log.Printf("[SESSION] %d of %d jobs remain after ledger filtering.", len(fresh), len(stubs))
	if len(fresh) == 0 {
		log.Printf("[SESSION] Nothing new to apply to.")
		return nil
	}

	chosen := s.choosePostings(fresh)
	if len(chosen) == 0 {
		log.Printf("[SESSION] No postings selected.")
		return nil
	}

	applicant := apply.NewApplicant(s.page, s.opts.DryRun)
	sentCount := 0
	total := len(chosen)

	for i, stub := range chosen {
		if sentCount >= maxApps {
			log.Printf("[SESSION] Send budget of %d reached. Stopping.", maxApps)
			break
		}

		quit, sent, err := s.processStubSafe(ctx, applicant, stub, i+1, total)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, errLedgerWrite) {
				return err
			}
			log.Printf("[SESSION] Error processing %s: %v", stub.URL, err)
			continue
		}
		if sent {
			sentCount++
		}
		if quit {
			log.Printf("[SESSION] User quit. Stopping.")
			break
		}

		if i < total-1 {
			if err := s.pace(ctx); err != nil {
				return err
			}
		}
	}

	return s.printSummary()
}

// filterStubs drops jobs the ledger already accounts for. IgnoreSeen keeps
// jobs a human has evaluated but not applied to.
func (s *Session) filterStubs(stubs []types.Stub) []types.Stub {
	var fresh []types.Stub
	for _, stub := range stubs {
		if s.ledger.HasApplied(stub.JobID) {
			continue
		}
		if !s.opts.IgnoreSeen && s.ledger.HasSeen(stub.JobID) {
			continue
		}
		fresh = append(fresh, stub)
	}
	return fresh
}

// choosePostings groups stubs by company and lets the user pick which
// postings to pursue, preserving discovery order within each company.
func (s *Session) choosePostings(stubs []types.Stub) []types.Stub {
	byCompany := make(map[string][]types.Stub)
	var order []string
	for _, stub := range stubs {
		name := stub.CompanyName
		if _, ok := byCompany[name]; !ok {
			order = append(order, name)
		}
		byCompany[name] = append(byCompany[name], stub)
	}

	var chosen []types.Stub
	for _, name := range order {
		chosen = append(chosen, s.reviewer.ChoosePostings(name, byCompany[name])...)
	}
	return chosen
}

// processStubSafe converts a panic while processing one stub into an error
// so a single malformed page cannot take down the whole session.
func (s *Session) processStubSafe(ctx context.Context, applicant *apply.Applicant, stub types.Stub, jobNumber, total int) (quit, sent bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing %s: %v", stub.URL, r)
		}
	}()
	return s.processStub(ctx, applicant, stub, jobNumber, total)
}

// processStub drives one stub through detail extraction, generation, review,
// and submission. Returns whether the user quit and whether a live send
// happened.
func (s *Session) processStub(ctx context.Context, applicant *apply.Applicant, stub types.Stub, jobNumber, total int) (quit, sent bool, err error) {
	if browser.DetectCaptcha(ctx, s.page) {
		if err := s.waitForCaptcha(ctx); err != nil {
			return false, false, err
		}
	}

	job, err := scrape.ScrapeDetail(ctx, s.page, stub.URL)
	if err != nil {
		return false, false, fmt.Errorf("detail scrape failed: %w", err)
	}

	// Location allow list. Auto-skip, never enters the seen set.
	if !filters.LocationAllowed(job.Location, s.cfg.Filters.AllowedLocations) {
		log.Printf("[SESSION] Skipping %s at %s: location %q not in allowed list.",
			job.Title, job.Company.Name, job.Location)
		app := types.NewApplication(job, "", types.StatusSkipped,
			fmt.Sprintf("%s: %s", types.NoteLocationFiltered, job.Location))
		return false, false, s.record(app)
	}

	// On-page already-applied indicator. Also an auto-skip.
	if applicant.IsAlreadyApplied(ctx) {
		log.Printf("[SESSION] Already applied to %s (on-page). Skipping.", job.Title)
		app := types.NewApplication(job, "", types.StatusSkipped, types.NoteAlreadyApplied)
		return false, false, s.record(app)
	}

	message := s.generate(ctx, &job)

	decision, finalMessage := s.reviewer.Review(job, message, jobNumber, total)
	switch decision {
	case review.DecisionQuit:
		return true, false, nil
	case review.DecisionSkip:
		app := types.NewApplication(job, finalMessage, types.StatusSkipped, types.NoteUserSkipped)
		return false, false, s.record(app)
	}

	app := applicant.Apply(ctx, job, finalMessage)
	if err := s.record(app); err != nil {
		return false, app.Status == types.StatusSent, err
	}
	return false, app.Status == types.StatusSent, nil
}

// record persists one outcome, tagging failures with errLedgerWrite so the
// run loop treats them as fatal.
func (s *Session) record(app types.Application) error {
	if err := s.ledger.Record(app); err != nil {
		return fmt.Errorf("%w: %v", errLedgerWrite, err)
	}
	return nil
}

// generate runs summarization and message generation concurrently, with
// retries. A message failure falls back to the local template so review
// always has something to show; a summary failure just leaves the raw
// sections on display.
func (s *Session) generate(ctx context.Context, job *types.Job) string {
	var (
		message, aboutSummary, roleSummary string
		msgErr, sumErr                     error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		msgErr = llm.Retry(gctx, 3, 2*time.Second, func(ctx context.Context) error {
			var err error
			message, err = s.generator.GenerateMessage(ctx, *job, s.cfg.Profile, s.cfg.MessageStyle)
			return err
		})
		return nil
	})
	g.Go(func() error {
		sumErr = llm.Retry(gctx, 3, 2*time.Second, func(ctx context.Context) error {
			var err error
			aboutSummary, roleSummary, err = s.generator.Summarize(ctx, *job)
			return err
		})
		return nil
	})
	_ = g.Wait()

	if sumErr != nil {
		log.Printf("[SESSION] Summarization failed: %v. Showing raw sections.", sumErr)
	} else {
		job.AboutSummary = aboutSummary
		job.DescriptionSummary = roleSummary
	}

	if msgErr != nil {
		log.Printf("[SESSION] Message generation failed: %v. Using fallback message.", msgErr)
		return llm.FallbackMessage(*job, s.cfg.Profile)
	}
	return message
}

// waitForCaptcha pauses until the challenge clears or a deadline passes.
// Solving is manual; the session just waits.
func (s *Session) waitForCaptcha(ctx context.Context) error {
	log.Printf("[SESSION] CAPTCHA detected. Solve it in the browser; waiting up to 5 minutes.")
	deadline := time.Now().Add(5 * time.Minute)
	for time.Now().Before(deadline) {
		select {
		case <-time.After(5 * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
		if !browser.DetectCaptcha(ctx, s.page) {
			log.Printf("[SESSION] CAPTCHA cleared.")
			return nil
		}
	}
	return fmt.Errorf("CAPTCHA not solved within the wait window")
}

// pace enforces the configured inter-application delay plus random jitter.
func (s *Session) pace(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	spread := s.cfg.Settings.DelayMaxSeconds - s.cfg.Settings.DelayMinSeconds
	if spread <= 0 {
		return nil
	}
	jitter := time.Duration(rand.Float64() * spread * float64(time.Second))
	log.Printf("[SESSION] Waiting %.1fs before next application.", jitter.Seconds())
	select {
	case <-time.After(jitter):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) printSummary() error {
	counts, err := s.ledger.Summary()
	if err != nil {
		return fmt.Errorf("failed to read ledger summary: %w", err)
	}

	rule := "========================================"
	fmt.Printf("\n%s\n", rule)
	fmt.Printf("  Session Complete (run %s)\n", s.runID)
	fmt.Printf("%s\n", rule)
	fmt.Printf("  Sent:    %d\n", counts[types.StatusSent])
	fmt.Printf("  Skipped: %d\n", counts[types.StatusSkipped])
	fmt.Printf("  Errors:  %d\n", counts[types.StatusError])
	fmt.Printf("  Dry Run: %d\n", counts[types.StatusDryRun])
	fmt.Printf("%s\n\n", rule)
	return nil
}
