package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	companySlugPattern = regexp.MustCompile(`/companies/([^/]+)`)
	breadcrumbPattern  = regexp.MustCompile(`Companies\s*/\s*([^(/\n]+)`)
	batchPrefixPattern = regexp.MustCompile(`([A-Z][A-Za-z0-9 ]+)\s*\(([WS]\d{2})\)`)
	batchPattern       = regexp.MustCompile(`\(([WS]\d{2})\)`)
)

// genericHeadings are heading texts that are never a company name.
var genericHeadings = map[string]bool{
	"companies": true,
	"jobs":      true,
	"apply":     true,
}

// CompanyName recovers the company name via an ordered strategy chain:
// URL slug, breadcrumb, batch-code parenthetical, first plausible heading.
func CompanyName(jobURL string, snap *Snapshot) string {
	urlCandidate := companyNameFromURL(jobURL)

	strategies := []func() string{
		func() string { return urlCandidate },
		func() string {
			if m := breadcrumbPattern.FindStringSubmatch(snap.Text); m != nil {
				return strings.TrimSpace(m[1])
			}
			return ""
		},
		func() string {
			if m := batchPrefixPattern.FindStringSubmatch(snap.Text); m != nil {
				return strings.TrimSpace(m[1])
			}
			return ""
		},
		func() string {
			for _, h := range snap.Headings {
				if genericHeadings[strings.ToLower(h)] || h == urlCandidate {
					continue
				}
				return h
			}
			return ""
		},
	}

	return firstNonEmpty(strategies)
}

func companyNameFromURL(jobURL string) string {
	m := companySlugPattern.FindStringSubmatch(jobURL)
	if m == nil {
		return ""
	}
	return TitleCase(strings.ReplaceAll(m[1], "-", " "))
}

// YCBatch extracts a batch code like W24 or S21 from page text.
func YCBatch(pageText string) string {
	if m := batchPattern.FindStringSubmatch(pageText); m != nil {
		return m[1]
	}
	return ""
}

var sizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+[-–]\d+)\s*(?:employees|people|team members)`),
	regexp.MustCompile(`(?i)(?:Team size|Company size|Size)[:\s]+(\d+[-–]\d+|\d+\+?)`),
	regexp.MustCompile(`(\d+\+?)\s*(?:employees|people|engineers)`),
}

// CompanySize extracts a headcount figure or range from page text.
func CompanySize(pageText string) string {
	for _, p := range sizePatterns {
		if m := p.FindStringSubmatch(pageText); m != nil {
			return m[len(m)-1]
		}
	}
	return ""
}

var industryLabelPattern = regexp.MustCompile(`(?i)(?:Industry|Sector|Category|Space)[:\s]+([^\n]{3,50})`)

// industryWhitelist are the category names worth matching when no explicit
// label is present. Up to three matches are comma-joined.
var industryWhitelist = []string{
	"B2B", "SaaS", "Fintech", "Healthcare", "AI", "Developer Tools",
	"Infrastructure", "Security", "Education", "Consumer", "Biotech",
	"Climate", "Real Estate", "Logistics", "Legal", "Insurance",
}

// Industry extracts the company's industry: an explicit label first, then a
// scan against the fixed category whitelist.
func Industry(pageText string) string {
	if m := industryLabelPattern.FindStringSubmatch(pageText); m != nil {
		return strings.TrimSpace(m[1])
	}

	var found []string
	for _, ind := range industryWhitelist {
		p := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(ind) + `\b`)
		if p.MatchString(pageText) {
			found = append(found, ind)
			if len(found) == 3 {
				break
			}
		}
	}
	return strings.Join(found, ", ")
}

// TitleCase capitalizes the first letter of each space-separated word.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// firstNonEmpty runs strategies in order and returns the first non-empty
// result. This keeps each fallback independently testable.
func firstNonEmpty(strategies []func() string) string {
	for _, s := range strategies {
		if v := s(); v != "" {
			return v
		}
	}
	return ""
}
