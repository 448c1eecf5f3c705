package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is one anchor element captured from a rendered page.
type Link struct {
	Href string
	Text string
}

// Snapshot is an immutable view of one rendered job detail page: the body
// text plus the element data the field extractors need. Building it is the
// only place HTML is touched; extraction itself is a pure function of the
// snapshot, so every extractor can be tested without a live page.
type Snapshot struct {
	Text     string   // rendered body text, newline-separated
	Headings []string // h1/h2 text in document order
	Chips    []string // short fragments from metadata-styled elements
	Links    []Link   // all anchors in document order
}

// chipSelectors match elements whose styling hints at metadata chips
// (location, job type, salary tags). Best-effort; the site has no stable
// schema.
var chipSelectors = []string{
	"span[class*='tag']",
	"div[class*='chip']",
	"div[class*='detail']",
	"span[class*='label']",
	"div[class*='meta']",
	"span[class*='badge']",
	"li[class*='detail']",
	"div[class*='info'] span",
}

// maxChipLength caps fragments considered as metadata chips.
const maxChipLength = 100

// NewSnapshot builds a Snapshot from rendered body text and HTML. A parse
// failure yields a text-only snapshot; it never returns an error because
// every downstream extractor degrades to regex scans over Text.
func NewSnapshot(bodyText, html string) *Snapshot {
	snap := &Snapshot{Text: bodyText}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return snap
	}

	doc.Find("h1, h2").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			snap.Headings = append(snap.Headings, text)
		}
	})

	seen := make(map[string]bool)
	for _, sel := range chipSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if text == "" || len(text) > maxChipLength || seen[text] {
				return
			}
			seen[text] = true
			snap.Chips = append(snap.Chips, text)
		})
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		snap.Links = append(snap.Links, Link{
			Href: strings.TrimSpace(href),
			Text: strings.TrimSpace(s.Text()),
		})
	})

	return snap
}
