package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/martin/startup-applier/internal/browser"
	"github.com/martin/startup-applier/internal/config"
	"github.com/martin/startup-applier/internal/ledger"
	"github.com/martin/startup-applier/internal/llm"
	"github.com/martin/startup-applier/internal/review"
	"github.com/martin/startup-applier/internal/session"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run a full application session",
	Long: `Runs the full pipeline: discover listings -> filter against the ledger -> choose postings -> extract details -> generate messages -> review -> apply -> record.

Every application is shown for review before anything is sent. Use --dry-run to walk the full flow without submitting.`,
	RunE: runSessionCmd,
}

var (
	runConfigPath string
	runDryRun     bool
	runIgnoreSeen bool
	runMaxApps    int
	runModel      string
)

func init() {
	runCommand.Flags().StringVarP(&runConfigPath, "config", "c", "config.yaml", "Path to config YAML file")
	runCommand.Flags().BoolVar(&runDryRun, "dry-run", false, "Fill the apply modal but never submit")
	runCommand.Flags().BoolVar(&runIgnoreSeen, "ignore-seen", false, "Resurface jobs previously skipped or dry-run; only confirmed sends are filtered")
	runCommand.Flags().IntVar(&runMaxApps, "max-applications", 0, "Per-session send budget (overrides config)")
	runCommand.Flags().StringVar(&runModel, "model", "", "Gemini model name (defaults to "+llm.DefaultModel+")")

	rootCmd.AddCommand(runCommand)
}

func runSessionCmd(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := config.Load(runConfigPath)
	if err != nil {
		return err
	}

	if err := setupSessionLog(cfg.Settings.DataDir); err != nil {
		return err
	}

	model := runModel
	if model == "" {
		model = cfg.Settings.Model
	}
	client, err := llm.NewGeminiClient(ctx, cfg.APIKey, model)
	if err != nil {
		return err
	}
	generator := llm.NewGenerator(client)
	defer func() { _ = generator.Close() }()

	mode := ledger.ModeLive
	if runDryRun {
		mode = ledger.ModeDryRun
	}
	led, err := ledger.Open(cfg.Settings.DataDir, mode)
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

	if err := ensureLoggedIn(ctx, chrome); err != nil {
		return err
	}

	sess := session.New(cfg, chrome, led, generator, review.NewTerminal(), session.Options{
		DryRun:     runDryRun,
		IgnoreSeen: runIgnoreSeen,
		MaxApps:    runMaxApps,
	})
	return sess.Run(ctx)
}

// ensureLoggedIn checks the persisted browser profile and waits for a manual
// login if the session is gone.
func ensureLoggedIn(ctx context.Context, page browser.Page) error {
	if browser.IsLoggedIn(ctx, page) {
		return nil
	}
	log.Printf("[BROWSER] Not logged in. Log in in the browser window; waiting up to 5 minutes.")
	return browser.WaitForManualLogin(ctx, page, 5*time.Minute)
}

// setupSessionLog tees log output into a per-run file under the data dir.
func setupSessionLog(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	name := fmt.Sprintf("session_%s.log", time.Now().Format("20060102_150405"))
	f, err := os.OpenFile(filepath.Join(dataDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session log: %w", err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return nil
}
