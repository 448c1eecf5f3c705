package browser

// Centralized queries for the Work at a Startup frontend. Everything that
// touches the DOM goes through these so a site redesign is a one-file fix.
// Run `apply_agent check-selectors` to verify them against the live page.
//
// Plain strings are CSS selectors; strings starting with // are XPath
// (needed for text matching, which CSS cannot express).
const (
	// Listing page.
	SelJobRow   = `a[href*='/jobs/']`
	SelLoadMore = `//button[contains(., 'Load more')]`
	SelShowMore = `//button[contains(., 'Show more')]`

	// Job detail page.
	SelJobTitle    = `h1`
	SelApplyButton = `//button[contains(., 'Apply')] | //a[contains(., 'Apply')]`

	// Application modal.
	SelModal         = `div[role='dialog'], div[class*='modal']`
	SelModalTextarea = `textarea`
	SelSendButton    = `//button[contains(., 'Send')]`
	SelCloseButton   = `//button[contains(., 'Close')]`

	// Auth state.
	SelLoggedInIndicator = `a[href*='profile']`

	// Already-applied indicator on a detail page.
	SelAlreadyApplied = `//*[text()='Applied']`
)

// CaptchaSelectors match bot-challenge widgets. Any hit pauses the session
// for manual resolution.
var CaptchaSelectors = []string{
	`#challenge-running`,
	`iframe[src*='captcha']`,
	`iframe[src*='challenge']`,
	`div[class*='captcha']`,
}
