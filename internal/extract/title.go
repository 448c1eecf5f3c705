package extract

import (
	"regexp"
	"strings"
)

// sectionHeaderBlocklist are heading texts that are section labels, never
// job titles.
var sectionHeaderBlocklist = map[string]bool{
	"about": true, "about us": true, "about you": true,
	"about the company": true, "about the role": true,
	"the role": true, "description": true, "overview": true,
	"requirements": true, "qualifications": true, "apply": true,
	"benefits": true, "culture": true, "values": true,
	"what you'll do": true, "what we're looking for": true,
	"responsibilities": true, "who we are": true, "who you are": true,
	"what you bring": true, "interview process": true,
	"other jobs": true, "similar jobs": true,
	"our stack": true, "tech stack": true, "perks": true,
	"compensation": true,
}

const maxTitleLength = 100

var titleSlugPattern = regexp.MustCompile(`/jobs/[A-Za-z0-9]+-(.+)$`)

// JobTitle scans headings top to bottom for the first plausible title, then
// falls back to the trailing dash-delimited slug of the detail URL.
func JobTitle(jobURL, companyName string, snap *Snapshot) string {
	for _, h := range snap.Headings {
		if h == "" || h == companyName || len(h) > maxTitleLength {
			continue
		}
		if sectionHeaderBlocklist[strings.ToLower(h)] {
			continue
		}
		return h
	}

	if m := titleSlugPattern.FindStringSubmatch(jobURL); m != nil {
		return TitleCase(strings.ReplaceAll(m[1], "-", " "))
	}
	return ""
}
