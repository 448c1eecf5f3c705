package extract

import "strings"

// chromePhrases are lines that leak into extracted sections from the site's
// nav menus, footers, and auth prompts. Matched exactly after trimming.
var chromePhrases = map[string]bool{
	"Companies":                      true,
	"Library":                        true,
	"Partners":                       true,
	"Resources":                      true,
	"Startup Jobs":                   true,
	"Sign up":                        true,
	"Log in":                         true,
	"Sign in":                        true,
	"Privacy":                        true,
	"Terms":                          true,
	"Connect directly with founders": true,
	"Y Combinator":                   true,
}

// shortLineAllowList are single-token lines short enough to look like nav
// links but that carry real meaning in a job posting.
var shortLineAllowList = map[string]bool{
	"remote": true,
	"onsite": true,
	"hybrid": true,
}

// minCleanLength is the shortest result Clean will return. Anything shorter
// is treated as "nothing extracted" because callers branch on emptiness.
const minCleanLength = 15

// Clean strips nav-menu garbage, breadcrumbs, and junk lines from a scraped
// text block. Returns "" when too little survives. Idempotent.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if chromePhrases[stripped] {
			continue
		}
		// Short single-word alphabetic lines are usually nav links.
		if len(stripped) < minCleanLength && !strings.Contains(stripped, " ") && isAlpha(stripped) {
			if shortLineAllowList[strings.ToLower(stripped)] {
				kept = append(kept, stripped)
			}
			continue
		}
		kept = append(kept, stripped)
	}

	result := strings.TrimSpace(strings.Join(kept, "\n"))
	if len(result) < minCleanLength {
		return ""
	}
	return result
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return len(s) > 0
}
