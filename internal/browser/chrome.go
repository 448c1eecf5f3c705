package browser

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// userAgent avoids the default headless-Chrome UA, which the board blocks.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// LaunchOptions configure the persistent Chrome session.
type LaunchOptions struct {
	// UserDataDir holds cookies and local storage so a manual login
	// survives across runs.
	UserDataDir string
	Headless    bool
}

// Chrome implements Page on a persistent chromedp browser context.
type Chrome struct {
	browserCtx  context.Context
	cancelCtx   context.CancelFunc
	cancelAlloc context.CancelFunc
}

// Launch starts Chrome with a persistent profile and returns a ready page.
// Requires Chrome/Chromium to be installed on the system.
func Launch(ctx context.Context, opts LaunchOptions) (*Chrome, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(opts.UserDataDir),
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1440, 900),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelCtx := chromedp.NewContext(allocCtx)

	// Force the browser process to start now so launch failures surface
	// here instead of on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelCtx()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	log.Printf("[BROWSER] Launched (persistent profile: %s, headless=%v)",
		opts.UserDataDir, opts.Headless)

	return &Chrome{
		browserCtx:  browserCtx,
		cancelCtx:   cancelCtx,
		cancelAlloc: cancelAlloc,
	}, nil
}

// Close shuts the browser down.
func (c *Chrome) Close() {
	c.cancelCtx()
	c.cancelAlloc()
	log.Printf("[BROWSER] Closed")
}

// run executes chromedp actions against the persistent browser context with
// a bounded deadline, honoring caller cancellation.
func (c *Chrome) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithTimeout(c.browserCtx, timeout)
	defer cancel()
	return chromedp.Run(runCtx, actions...)
}

// Navigate loads a URL and waits for the body to be ready.
func (c *Chrome) Navigate(ctx context.Context, url string) error {
	err := c.run(ctx, 45*time.Second,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

// BodyText returns the rendered text of the document body.
func (c *Chrome) BodyText(ctx context.Context) (string, error) {
	var text string
	err := c.run(ctx, 15*time.Second,
		chromedp.Evaluate(`document.body.innerText`, &text))
	if err != nil {
		return "", fmt.Errorf("failed to read body text: %w", err)
	}
	return text, nil
}

// HTML returns the full rendered markup.
func (c *Chrome) HTML(ctx context.Context) (string, error) {
	var html string
	err := c.run(ctx, 15*time.Second,
		chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	if err != nil {
		return "", fmt.Errorf("failed to read document HTML: %w", err)
	}
	return html, nil
}

// Height returns the current document scroll height.
func (c *Chrome) Height(ctx context.Context) (int, error) {
	var height int
	err := c.run(ctx, 10*time.Second,
		chromedp.Evaluate(`document.body.scrollHeight`, &height))
	if err != nil {
		return 0, fmt.Errorf("failed to read document height: %w", err)
	}
	return height, nil
}

// ScrollToBottom scrolls the window to the bottom of the document.
func (c *Chrome) ScrollToBottom(ctx context.Context) error {
	return c.run(ctx, 10*time.Second,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil))
}

// Click waits for the selector and clicks it.
func (c *Chrome) Click(ctx context.Context, sel string, timeout time.Duration) error {
	if err := c.run(ctx, timeout, chromedp.Click(sel)); err != nil {
		return fmt.Errorf("click %q failed: %w", sel, err)
	}
	return nil
}

// ClickIfPresent clicks the selector only when it currently matches.
func (c *Chrome) ClickIfPresent(ctx context.Context, sel string) bool {
	if !c.Exists(ctx, sel) {
		return false
	}
	return c.run(ctx, 5*time.Second, chromedp.Click(sel)) == nil
}

// WaitVisible blocks until the selector is visible or the timeout ends.
func (c *Chrome) WaitVisible(ctx context.Context, sel string, timeout time.Duration) error {
	if err := c.run(ctx, timeout, chromedp.WaitVisible(sel)); err != nil {
		return fmt.Errorf("%q did not appear within %s: %w", sel, timeout, err)
	}
	return nil
}

// WaitGone blocks until the selector is no longer present.
func (c *Chrome) WaitGone(ctx context.Context, sel string, timeout time.Duration) error {
	if err := c.run(ctx, timeout, chromedp.WaitNotPresent(sel)); err != nil {
		return fmt.Errorf("%q still present after %s: %w", sel, timeout, err)
	}
	return nil
}

// Exists reports whether the selector matches anything right now.
func (c *Chrome) Exists(ctx context.Context, sel string) bool {
	var nodeCount int
	// DOM search via JS keeps this working for both CSS and XPath queries.
	script := fmt.Sprintf(`(() => {
		const q = %q;
		if (q.startsWith('//')) {
			return document.evaluate(q, document, null,
				XPathResult.ORDERED_NODE_SNAPSHOT_TYPE, null).snapshotLength;
		}
		return document.querySelectorAll(q).length;
	})()`, sel)
	if err := c.run(ctx, 5*time.Second, chromedp.Evaluate(script, &nodeCount)); err != nil {
		return false
	}
	return nodeCount > 0
}

// Fill writes text into the input and synthesizes the input/change events
// React-style frontends need before their validation state updates.
func (c *Chrome) Fill(ctx context.Context, sel, text string, timeout time.Duration) error {
	dispatch := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (el) {
			el.dispatchEvent(new Event('input', { bubbles: true }));
			el.dispatchEvent(new Event('change', { bubbles: true }));
		}
	})()`, sel)

	err := c.run(ctx, timeout,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
		chromedp.SetValue(sel, text, chromedp.ByQuery),
		chromedp.Evaluate(dispatch, nil),
	)
	if err != nil {
		return fmt.Errorf("failed to fill %q: %w", sel, err)
	}
	return nil
}
