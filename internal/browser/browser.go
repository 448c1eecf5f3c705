// Package browser wraps a persistent headless-or-headed Chrome session
// behind a small Page interface. The rest of the system depends only on
// these primitives, never on a specific automation engine.
package browser

import (
	"context"
	"fmt"
	"time"
)

// Page is the browser automation surface the scraper, applicant, and
// session layers are written against. Implementations must keep a single
// logical page; all interaction is strictly sequential.
type Page interface {
	// Navigate loads a URL and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// BodyText returns the rendered text of the document body.
	BodyText(ctx context.Context) (string, error)
	// HTML returns the full rendered document markup.
	HTML(ctx context.Context) (string, error)
	// Height returns the current document scroll height.
	Height(ctx context.Context) (int, error)
	// ScrollToBottom scrolls to the bottom of the document.
	ScrollToBottom(ctx context.Context) error
	// Click waits for the selector (bounded) and clicks it.
	Click(ctx context.Context, sel string, timeout time.Duration) error
	// ClickIfPresent clicks the selector if it is currently present.
	// Reports whether a click happened; never returns an error.
	ClickIfPresent(ctx context.Context, sel string) bool
	// WaitVisible blocks until the selector is visible or the timeout ends.
	WaitVisible(ctx context.Context, sel string, timeout time.Duration) error
	// WaitGone blocks until the selector is no longer present.
	WaitGone(ctx context.Context, sel string, timeout time.Duration) error
	// Exists reports whether the selector currently matches anything.
	Exists(ctx context.Context, sel string) bool
	// Fill writes text into the selector's input and dispatches the
	// input/change events the page's reactive framework listens for.
	Fill(ctx context.Context, sel, text string, timeout time.Duration) error
}

// BaseURL is the job board root.
const BaseURL = "https://www.workatastartup.com"

// LoginURL is where a manual login session starts.
const LoginURL = BaseURL + "/companies/jobs"

// IsLoggedIn navigates to the board and checks for the authenticated UI.
func IsLoggedIn(ctx context.Context, page Page) bool {
	if err := page.Navigate(ctx, BaseURL); err != nil {
		return false
	}
	return page.WaitVisible(ctx, SelLoggedInIndicator, 5*time.Second) == nil
}

// WaitForManualLogin opens the login page and polls for the logged-in
// indicator until the user signs in or the timeout expires.
func WaitForManualLogin(ctx context.Context, page Page, timeout time.Duration) error {
	if err := page.Navigate(ctx, LoginURL); err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if page.WaitVisible(ctx, SelLoggedInIndicator, 2*time.Second) == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
	return fmt.Errorf("login not detected within %s", timeout)
}

// DetectCaptcha reports whether a bot challenge is present on the page.
func DetectCaptcha(ctx context.Context, page Page) bool {
	for _, sel := range CaptchaSelectors {
		if page.Exists(ctx, sel) {
			return true
		}
	}
	return false
}
