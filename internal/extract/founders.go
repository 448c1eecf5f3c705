package extract

import (
	"regexp"
	"strings"

	"github.com/martin/startup-applier/internal/types"
)

// maxFounders caps how many founders one company record carries.
const maxFounders = 5

// junkNames are link texts that look like names but are UI chrome.
var junkNames = []string{
	"linkedin", "connect", "view profile", "follow", "similar jobs",
	"apply", "share", "save", "back", "next", "previous", "sign up",
	"log in", "sign in", "view all jobs", "see all jobs", "all jobs",
}

var founderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:Founded by|Founders?)[:\s]+([A-Z][a-z]+ [A-Z][a-z]+(?:\s*(?:,|and)\s*[A-Z][a-z]+ [A-Z][a-z]+)*)`),
	regexp.MustCompile(`(?:CEO|CTO|Co-founder)[:\s]+([A-Z][a-z]+ [A-Z][a-z]+)`),
}

var nameSplitPattern = regexp.MustCompile(`\s*,\s*|\s+and\s+`)

// Founders collects founder names with profile links from the page's
// LinkedIn anchors, falling back to page-wide "Founded by"/"CEO:" regexes
// when no link survives the filters. Document order, capped at five.
func Founders(snap *Snapshot) []types.Founder {
	var founders []types.Founder

	seenHrefs := make(map[string]bool)
	for _, link := range snap.Links {
		if !strings.Contains(link.Href, "linkedin.com/in/") {
			continue
		}
		if seenHrefs[link.Href] {
			continue
		}
		seenHrefs[link.Href] = true

		if !plausibleFounderName(link.Text) {
			continue
		}
		founders = append(founders, types.Founder{Name: link.Text, LinkedIn: link.Href})
		if len(founders) == maxFounders {
			return founders
		}
	}

	if len(founders) == 0 {
		seenNames := make(map[string]bool)
		for _, p := range founderPatterns {
			for _, m := range p.FindAllStringSubmatch(snap.Text, -1) {
				for _, name := range nameSplitPattern.Split(m[1], -1) {
					name = strings.TrimSpace(name)
					if name == "" || seenNames[name] || len(strings.Fields(name)) < 2 {
						continue
					}
					seenNames[name] = true
					founders = append(founders, types.Founder{Name: name})
				}
			}
		}
	}

	if len(founders) > maxFounders {
		founders = founders[:maxFounders]
	}
	return founders
}

// plausibleFounderName rejects link texts that are empty, too short or long,
// match the junk blocklist, or are not 2-4 purely alphabetic words.
func plausibleFounderName(name string) bool {
	if len(name) < 3 || len(name) > 50 {
		return false
	}

	normalized := strings.Join(strings.Fields(strings.ToLower(name)), " ")
	for _, junk := range junkNames {
		if strings.Contains(normalized, junk) {
			return false
		}
	}

	words := strings.Fields(name)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		if !isAlpha(w) {
			return false
		}
	}
	return true
}
