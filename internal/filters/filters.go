// Package filters builds listing URLs from search filter config and applies
// the session-side location allow list.
package filters

import (
	"strings"

	"github.com/martin/startup-applier/internal/browser"
	"github.com/martin/startup-applier/internal/config"
)

// roleCategoryParams maps config role category names to the board's "role"
// query parameter values.
var roleCategoryParams = map[string]string{
	"engineering": "eng",
	"design":      "design",
	"product":     "product",
	"science":     "science",
	"sales":       "sales",
	"marketing":   "marketing",
	"support":     "support",
	"operations":  "operations",
	"recruiting":  "recruiting",
	"finance":     "finance",
	"legal":       "legal",
	"all":         "any",
	"any":         "any",
}

// jobTypeParams maps config commitment names to "jobType" values. An empty
// mapped value means the parameter is omitted.
var jobTypeParams = map[string]string{
	"any":        "",
	"all":        "",
	"fulltime":   "fulltime",
	"full-time":  "fulltime",
	"intern":     "internship",
	"internship": "internship",
	"contract":   "contract",
}

// sortParams maps config sort names to "sortBy" values.
var sortParams = map[string]string{
	"most_active":  "most_active",
	"newest":       "created_desc",
	"created_desc": "created_desc",
}

// BuildJobsURL constructs the companies listing URL from the configured
// search filters. Multi-select filters use repeated query parameters
// (role=eng&role=design), so the query string is assembled by hand.
func BuildJobsURL(f config.SearchFilters) string {
	parts := []string{"layout=list-compact", "tab=any"}

	if f.JobType != "" && f.JobType != "any" {
		if mapped := jobTypeParams[strings.ToLower(f.JobType)]; mapped != "" {
			parts = append(parts, "jobType="+mapped)
		}
	}

	for _, cat := range f.RoleCategories {
		mapped := roleCategoryParams[strings.ToLower(cat)]
		if mapped == "" {
			continue
		}
		parts = append(parts, "role="+mapped)
		if mapped == "any" {
			break // "all" collapses to a single role=any
		}
	}

	if f.Remote != "" && f.Remote != "any" {
		parts = append(parts, "remote="+f.Remote)
	}
	if f.Location != "" {
		parts = append(parts, "query="+strings.ReplaceAll(f.Location, " ", "+"))
	}
	if f.CompanySize != "" && f.CompanySize != "any" {
		parts = append(parts, "companySize="+f.CompanySize)
	}

	if len(f.Industries) > 0 {
		parts = append(parts, "industry="+strings.Join(f.Industries, ","))
	} else {
		parts = append(parts, "industry=any")
	}

	if f.VisaNotRequired != "" && f.VisaNotRequired != "any" {
		parts = append(parts, "usVisaNotRequired="+f.VisaNotRequired)
	} else {
		parts = append(parts, "usVisaNotRequired=any")
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = "most_active"
	}
	if mapped, ok := sortParams[sortBy]; ok {
		sortBy = mapped
	}
	parts = append(parts, "sortBy="+sortBy)

	parts = append(parts,
		"demographic=any",
		"hasEquity=any",
		"hasSalary=any",
		"interviewProcess=any",
	)

	return browser.BaseURL + "/companies?" + strings.Join(parts, "&")
}

// LocationAllowed reports whether a job location passes the allow list. An
// empty allow list or an unknown location passes; otherwise any allowed
// entry must appear in the location, case-insensitively.
func LocationAllowed(location string, allowed []string) bool {
	if len(allowed) == 0 || location == "" {
		return true
	}
	locationLower := strings.ToLower(location)
	for _, entry := range allowed {
		if strings.Contains(locationLower, strings.ToLower(entry)) {
			return true
		}
	}
	return false
}
