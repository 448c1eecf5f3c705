package scrape

import (
	"context"
	"log"

	"github.com/martin/startup-applier/internal/browser"
	"github.com/martin/startup-applier/internal/extract"
	"github.com/martin/startup-applier/internal/types"
)

// ScrapeDetail navigates to a job detail page, snapshots it, and runs field
// extraction. Extraction itself never fails; only navigation and snapshot
// reads can return an error.
func ScrapeDetail(ctx context.Context, page browser.Page, jobURL string) (types.Job, error) {
	log.Printf("[SCRAPE] Scraping job detail: %s", jobURL)

	if err := page.Navigate(ctx, jobURL); err != nil {
		return types.Job{}, err
	}

	bodyText, err := page.BodyText(ctx)
	if err != nil {
		return types.Job{}, err
	}
	html, err := page.HTML(ctx)
	if err != nil {
		return types.Job{}, err
	}

	snap := extract.NewSnapshot(bodyText, html)
	return extract.Extract(jobURL, snap), nil
}
