// Package scrape discovers job postings on the board's listing page and
// turns detail pages into structured Job records.
package scrape

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/martin/startup-applier/internal/browser"
	"github.com/martin/startup-applier/internal/extract"
	"github.com/martin/startup-applier/internal/types"
)

// maxScrollAttempts bounds the progressive-loading loop on the listing page.
const maxScrollAttempts = 25

// ancestorWalkLimit bounds how far up the tree stub extraction looks for the
// enclosing company card.
const ancestorWalkLimit = 15

var jobTypePrefix = regexp.MustCompile(`(?i)^(fulltime|parttime|intern|remote|contract)`)

// Discoverer paginates a filtered search result and yields job stubs.
type Discoverer struct {
	page browser.Page
}

// NewDiscoverer returns a Discoverer bound to one browser page.
func NewDiscoverer(page browser.Page) *Discoverer {
	return &Discoverer{page: page}
}

// Discover navigates to the filtered listing URL, loads as many results as
// the page will yield, and returns up to maxCount unique job stubs in
// discovery order.
func (d *Discoverer) Discover(ctx context.Context, searchURL string, maxCount int) ([]types.Stub, error) {
	log.Printf("[SCRAPE] Navigating to jobs page: %s", searchURL)
	if err := d.page.Navigate(ctx, searchURL); err != nil {
		return nil, err
	}

	d.loadAll(ctx)

	html, err := d.page.HTML(ctx)
	if err != nil {
		return nil, err
	}

	stubs := ParseStubs(html)
	log.Printf("[SCRAPE] Extracted %d unique job stubs.", len(stubs))

	if len(stubs) > maxCount {
		stubs = stubs[:maxCount]
	}
	return stubs, nil
}

// loadAll scrolls the listing and clicks load-more controls until the
// document height stops growing or the attempt ceiling is reached.
func (d *Discoverer) loadAll(ctx context.Context) {
	for i := 0; i < maxScrollAttempts; i++ {
		previous, err := d.page.Height(ctx)
		if err != nil {
			return
		}
		if err := d.page.ScrollToBottom(ctx); err != nil {
			return
		}
		sleep(ctx, time.Second) // let lazy-loaded content render

		for _, sel := range []string{browser.SelLoadMore, browser.SelShowMore} {
			if d.page.ClickIfPresent(ctx, sel) {
				sleep(ctx, 1500*time.Millisecond)
			}
		}

		current, err := d.page.Height(ctx)
		if err != nil || current == previous {
			log.Printf("[SCRAPE] No more content after %d scrolls.", i+1)
			return
		}
	}
}

// ParseStubs extracts job stubs from listing-page HTML. For each job link it
// walks up through ancestor elements to find the enclosing company card's
// name link and blurb paragraph. Duplicate job ids are dropped.
func ParseStubs(html string) []types.Stub {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	var stubs []types.Stub
	seen := make(map[string]bool)

	doc.Find(browser.SelJobRow).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		jobID := extract.JobID(href)
		if jobID == "" || seen[jobID] {
			return
		}
		seen[jobID] = true

		name, blurb := companyContext(link)
		if name == "" {
			name = companyNameFromHref(href)
		}

		stubs = append(stubs, types.Stub{
			JobID:        jobID,
			Title:        strings.TrimSpace(link.Text()),
			CompanyName:  NormalizeCompanyName(name),
			CompanyBlurb: blurb,
			URL:          absoluteURL(href),
		})
	})

	return stubs
}

// companyContext walks up from a job link looking for the nearest company
// profile link (name) and the nearest plausible blurb paragraph. The two
// searches succeed independently; the first ancestor satisfying each wins.
func companyContext(link *goquery.Selection) (name, blurb string) {
	node := link
	for i := 0; i < ancestorWalkLimit; i++ {
		node = node.Parent()
		if node.Length() == 0 {
			break
		}

		if name == "" {
			compLink := node.Find(`a[href*='/companies/']`).First()
			if compLink.Length() > 0 {
				text := strings.TrimSpace(compLink.Text())
				if text != "" && len(text) < 80 {
					name = text
				} else if href, ok := compLink.Attr("href"); ok {
					name = companyNameFromHref(href)
				}
			}
		}

		if blurb == "" {
			node.Find("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
				text := strings.TrimSpace(p.Text())
				if len(text) > 15 && len(text) < 200 &&
					strings.Contains(text, " ") && !jobTypePrefix.MatchString(text) {
					blurb = text
					return false
				}
				return true
			})
		}

		if name != "" && blurb != "" {
			break
		}
	}
	return name, blurb
}

var companyHrefPattern = regexp.MustCompile(`/companies/([^/]+)`)

func companyNameFromHref(href string) string {
	if m := companyHrefPattern.FindStringSubmatch(href); m != nil {
		return strings.ReplaceAll(m[1], "-", " ")
	}
	return ""
}

// NormalizeCompanyName title-cases names that still look like URL slugs
// (no separator, starts lowercase).
func NormalizeCompanyName(name string) string {
	if name == "" {
		return ""
	}
	if !strings.Contains(name, "-") && name[0] >= 'a' && name[0] <= 'z' {
		return extract.TitleCase(name)
	}
	return name
}

func absoluteURL(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	return browser.BaseURL + href
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
