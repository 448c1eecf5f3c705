package main

import (
	"context"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/martin/startup-applier/internal/browser"
	"github.com/martin/startup-applier/internal/config"
)

var loginCommand = &cobra.Command{
	Use:   "login",
	Short: "Open a browser window to log in",
	Long:  "Opens a non-headless browser against the persisted profile so you can log in once. Later sessions reuse the saved cookies.",
	RunE:  runLoginCmd,
}

var loginConfigPath string

func init() {
	loginCommand.Flags().StringVarP(&loginConfigPath, "config", "c", "config.yaml", "Path to config YAML file")
	rootCmd.AddCommand(loginCommand)
}

func runLoginCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Config may be incomplete at login time; only the browser dir matters.
	userDataDir := config.DefaultUserDataDir
	if cfg, err := config.Load(loginConfigPath); err == nil {
		userDataDir = cfg.Settings.UserDataDir
	}

	chrome, err := browser.Launch(ctx, browser.LaunchOptions{
		UserDataDir: userDataDir,
		Headless:    false,
	})
	if err != nil {
		return err
	}
	defer chrome.Close()

	if browser.IsLoggedIn(ctx, chrome) {
		log.Printf("[BROWSER] Already logged in.")
		return nil
	}

	log.Printf("[BROWSER] Log in in the browser window; waiting up to 10 minutes.")
	if err := browser.WaitForManualLogin(ctx, chrome, 10*time.Minute); err != nil {
		return err
	}
	log.Printf("[BROWSER] Login saved to %s.", userDataDir)
	return nil
}
