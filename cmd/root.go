package cmd

import (
	"context"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ukpip",
	Short: "Multilingual assistant for UK government forms",
	Long: `ukpip is a terminal assistant that helps Farsi, English and Ukrainian speakers
fill in UK government forms (PIP, Universal Credit, Blue Badge, HMRC and more).

Answers are saved as you type. Set GEMINI_API_KEY, OPENAI_API_KEY,
ANTHROPIC_API_KEY or OPENROUTER_API_KEY to get AI-drafted answers.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, cancelled on interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides UKPIP_DB env var)")
	rootCmd.PersistentFlags().String("lang", "", "Interface language: fa, en or uk (overrides UKPIP_LANG env var)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome animation")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(modulesCmd)
	rootCmd.AddCommand(answersCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(unlockCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then UKPIP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
