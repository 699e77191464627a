package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/app"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/screen"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/selfupdate"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/store"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the form assistant (same as running ukpip with no command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")
}

// runApp opens the stores, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	logPath, err := resolveLogPath(e.cfg.LogPath)
	if err != nil {
		return err
	}
	// The TUI owns the terminal; log lines go to a file instead.
	logFile, err := tea.LogToFile(logPath, "ukpip")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	e.setLogger(log.Default())

	deps := screen.Deps{
		Catalog: e.catalog,
		Store:   e.kv,
		Ledger:  e.ledger,
		Prefs:   &screen.Prefs{Lang: e.lang},
		Logger:  e.logger,
	}

	provider, err := e.provider(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		e.logger.Printf("llm: %v", err)
	} else {
		gcfg := e.guidanceConfig()
		deps.NewGuidance = func() *guidance.Service {
			return guidance.NewService(provider, gcfg, guidance.WithLogger(e.logger))
		}
		deps.Checker = e.newChecker(provider)
	}

	if deps.Checkout, err = e.checkoutFlow(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	deps.LatestVersion = checkForUpdate(ctx, e.logger)

	noSplash, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(ctx, deps, app.Options{SkipSplash: noSplash})
}

func resolveLogPath(p string) (string, error) {
	if p == "" {
		dir, err := store.DataDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, "ukpip.log")
	}
	return p, store.EnsureDir(p)
}

// checkForUpdate returns a newer release recorded by an earlier run and
// refreshes the record in the background once it is a day old.
func checkForUpdate(ctx context.Context, logger *log.Logger) string {
	if version == "(devel)" {
		return ""
	}
	dir, err := store.DataDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "update-check.json")
	checker := selfupdate.NewChecker()
	latest, stale := checker.Cached(path, version)
	if stale {
		go func() {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
			defer cancel()
			if err := checker.Refresh(ctx, path, version); err != nil {
				logger.Printf("update check: %v", err)
			}
		}()
	}
	return latest
}
