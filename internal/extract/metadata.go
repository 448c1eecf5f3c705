package extract

import (
	"regexp"
	"strings"
)

// Metadata holds the three chip-derived fields of a posting.
type Metadata struct {
	Location string
	JobType  string
	Salary   string
}

// locationKeywords is the gazetteer of city/region/remote terms a fragment
// must contain to be accepted as a location. Prevents adopting unrelated
// short phrases like "assistance" or "compensation".
var locationKeywords = []string{
	"remote", "san francisco", "sf", "new york", "nyc",
	"los angeles", "la", "austin", "seattle", "boston",
	"chicago", "denver", "miami", "india", "london",
	"berlin", "toronto", "paris", "bangalore", "bengaluru",
	"bay area", "palo alto", "mountain view", "sunnyvale",
	"cupertino", "menlo park", "redwood city",
	"washington", "dc", "portland", "atlanta", "dallas",
	"houston", "philadelphia", "san jose", "san diego",
	"united states", "us", "usa", "canada", "uk",
	", ca", ", ny", ", tx", ", wa",
}

var jobTypeKeywords = []string{
	"full-time", "part-time", "intern", "contract", "fulltime",
}

var (
	salaryShorthand = regexp.MustCompile(`\d+k`)
	salaryRange     = regexp.MustCompile(`\$[\d,]+\s*[-–]\s*\$[\d,]+(?:\s*(?:per year|/yr|annually))?`)

	locationLabelPattern = regexp.MustCompile(`(?i)(?:Location|Based in|Office)[:\s]+([^\n]{3,50})`)
	locationCityPattern  = regexp.MustCompile(`(?i)((?:San Francisco|New York|Remote|Austin|Seattle|Boston|Los Angeles|Chicago|Palo Alto|Mountain View)[^\n]{0,30})`)
)

// IsValidLocation reports whether the text contains a gazetteer keyword.
func IsValidLocation(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range locationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractMetadata classifies metadata chip fragments into location, job type,
// and salary, in that priority order; a fragment fills at most one still-open
// category. Unfilled location and salary fall back to page-wide regex scans.
func ExtractMetadata(snap *Snapshot) Metadata {
	var meta Metadata

	for _, chip := range snap.Chips {
		lower := strings.ToLower(chip)
		switch {
		case meta.Location == "" && IsValidLocation(chip):
			meta.Location = chip
		case meta.JobType == "" && containsAny(lower, jobTypeKeywords):
			meta.JobType = chip
		case meta.Salary == "" && (strings.Contains(chip, "$") || salaryShorthand.MatchString(lower)):
			meta.Salary = chip
		}
	}

	if meta.Location == "" {
		for _, p := range []*regexp.Regexp{locationLabelPattern, locationCityPattern} {
			if m := p.FindStringSubmatch(snap.Text); m != nil {
				candidate := strings.TrimSpace(m[1])
				if IsValidLocation(candidate) {
					meta.Location = candidate
					break
				}
			}
		}
	}

	if meta.Salary == "" {
		if m := salaryRange.FindString(snap.Text); m != "" {
			meta.Salary = m
		}
	}

	return meta
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
