package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/martin/startup-applier/internal/browser"
	"github.com/martin/startup-applier/internal/config"
	"github.com/martin/startup-applier/internal/filters"
	"github.com/martin/startup-applier/internal/scrape"
)

var checkSelectorsCommand = &cobra.Command{
	Use:   "check-selectors",
	Short: "Verify that the DOM selectors still match the live site",
	Long:  "Navigates to the listing page and one detail page, then reports which selectors find elements. Run this when scraping starts returning empty fields.",
	RunE:  runCheckSelectorsCmd,
}

var checkConfigPath string

func init() {
	checkSelectorsCommand.Flags().StringVarP(&checkConfigPath, "config", "c", "config.yaml", "Path to config YAML file")
	rootCmd.AddCommand(checkSelectorsCommand)
}

func runCheckSelectorsCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(checkConfigPath)
	if err != nil {
		return err
	}

	chrome, err := browser.Launch(ctx, browser.LaunchOptions{
		UserDataDir: cfg.Settings.UserDataDir,
		Headless:    cfg.Settings.Headless,
	})
	if err != nil {
		return err
	}
	defer chrome.Close()

	searchURL := filters.BuildJobsURL(cfg.Filters)
	fmt.Printf("Checking listing page: %s\n", searchURL)
	if err := chrome.Navigate(ctx, searchURL); err != nil {
		return fmt.Errorf("failed to open listing page: %w", err)
	}
	time.Sleep(2 * time.Second)

	listingSelectors := []struct{ name, sel string }{
		{"JOB_ROW", browser.SelJobRow},
		{"LOAD_MORE", browser.SelLoadMore},
		{"LOGGED_IN_INDICATOR", browser.SelLoggedInIndicator},
	}
	for _, s := range listingSelectors {
		report(ctx, chrome, s.name, s.sel)
	}

	// Pull one job URL off the listing to check the detail page selectors.
	discoverer := scrape.NewDiscoverer(chrome)
	stubs, err := discoverer.Discover(ctx, searchURL, 1)
	if err != nil || len(stubs) == 0 {
		fmt.Println("\nNo job links found; cannot check detail page selectors.")
		fmt.Println("If selectors show FAIL above, update internal/browser/selectors.go.")
		return nil
	}

	fmt.Printf("\nChecking detail page: %s\n", stubs[0].URL)
	if err := chrome.Navigate(ctx, stubs[0].URL); err != nil {
		return fmt.Errorf("failed to open detail page: %w", err)
	}
	time.Sleep(2 * time.Second)

	detailSelectors := []struct{ name, sel string }{
		{"JOB_TITLE", browser.SelJobTitle},
		{"APPLY_BUTTON", browser.SelApplyButton},
	}
	for _, s := range detailSelectors {
		report(ctx, chrome, s.name, s.sel)
	}

	fmt.Println("\nIf any selectors show FAIL, update internal/browser/selectors.go.")
	fmt.Println("Use browser DevTools (F12) to inspect the page and find correct selectors.")
	return nil
}

func report(ctx context.Context, page browser.Page, name, sel string) {
	status := "FAIL"
	if page.Exists(ctx, sel) {
		status = "PASS"
	}
	fmt.Printf("  [%s] %s: %s\n", status, name, sel)
}
