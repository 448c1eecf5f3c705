package extract

import (
	"regexp"
	"strings"
)

// socialDomains mark "icon row" neighbours; a non-excluded link sitting
// within two positions of one of these is very likely the company homepage.
var socialDomains = []string{
	"linkedin.com", "twitter.com", "x.com", "github.com",
	"facebook.com", "instagram.com", "youtube.com", "medium.com",
}

// excludedDomains can never be the company website: social networks, the job
// board itself, and common recruiting/ATS platforms.
var excludedDomains = append([]string{
	"ycombinator.com", "workatastartup.com", "crunchbase.com",
	"glassdoor.com", "indeed.com", "lever.co", "greenhouse.io",
	"bamboohr.com", "ashbyhq.com", "google.com", "apple.com",
}, socialDomains...)

// websiteLabels are generic link texts that point at a company homepage.
var websiteLabels = map[string]bool{
	"website":       true,
	"site":          true,
	"homepage":      true,
	"visit site":    true,
	"visit website": true,
}

var bareDomainPattern = regexp.MustCompile(`(?i)^(?:https?://)?(?:www\.)?[a-z0-9-]+\.[a-z]{2,}/?$`)

// CompanyWebsite resolves the company's own site from the page's outbound
// links: icon-row adjacency first, then a generically labeled link, then a
// link whose visible text is a bare domain.
func CompanyWebsite(snap *Snapshot) string {
	links := snap.Links

	for i, link := range links {
		if !strings.HasPrefix(link.Href, "http") {
			continue
		}
		if hasSocialNeighbour(links, i) && !isExcluded(link.Href) {
			return link.Href
		}
	}

	for _, link := range links {
		if websiteLabels[strings.ToLower(link.Text)] &&
			strings.HasPrefix(link.Href, "http") && !isExcluded(link.Href) {
			return link.Href
		}
	}

	for _, link := range links {
		if !strings.HasPrefix(link.Href, "http") || isExcluded(link.Href) {
			continue
		}
		if bareDomainPattern.MatchString(link.Text) {
			return link.Href
		}
	}

	return ""
}

func hasSocialNeighbour(links []Link, i int) bool {
	for _, offset := range []int{-2, -1, 1, 2} {
		ni := i + offset
		if ni >= 0 && ni < len(links) && isSocial(links[ni].Href) {
			return true
		}
	}
	return false
}

func isSocial(url string) bool {
	lower := strings.ToLower(url)
	for _, d := range socialDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}

func isExcluded(url string) bool {
	lower := strings.ToLower(url)
	for _, d := range excludedDomains {
		if strings.Contains(lower, d) {
			return true
		}
	}
	return false
}
