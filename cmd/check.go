package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/checker"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <form-file> [evidence-file...]",
	Short: "Score a completed form and suggest improvements",
	Long: `Send a completed form (PDF or image) and optional evidence files to the
model and print the scored report. Uses one form checker credit.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		formType, _ := cmd.Flags().GetString("type")
		asJSON, _ := cmd.Flags().GetBool("json")
		saveDir, _ := cmd.Flags().GetString("save")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if _, err := e.module(formType); err != nil {
			return err
		}

		provider, err := e.provider(ctx)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		c := e.newChecker(provider)

		in, err := c.Load(formType, args[0], args[1:], e.lang)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stderr, "Analyzing...")
		report, err := c.Analyze(ctx, in)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}
		printReport(report, e)

		if saveDir != "" {
			path := filepath.Join(saveDir, checker.ImprovementsFileName(e.lang))
			if err := os.WriteFile(path, []byte(report.ImprovementsText(e.lang)), 0o644); err != nil {
				return fmt.Errorf("save improvements: %w", err)
			}
			fmt.Printf("\nImprovements saved to %s\n", path)
		}
		return nil
	},
}

func printReport(r *checker.Report, e *env) {
	sep := strings.Repeat("─", 60)
	stars := func(n int) string {
		n = max(0, min(checker.MaxScore, n))
		return strings.Repeat("★", n) + strings.Repeat("☆", checker.MaxScore-n)
	}

	fmt.Printf("Overall  %s\n", stars(r.OverallStars))
	fmt.Println(sep)
	for _, s := range r.Scores.Entries() {
		fmt.Printf("%-18s %s\n", s.Name, stars(s.Value))
	}

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Printf("\n%s\n%s\n", title, sep)
		for _, it := range items {
			fmt.Printf("• %s\n", it)
		}
	}

	if r.TranslationSummary != "" {
		fmt.Printf("\nSummary\n%s\n%s\n", sep, r.TranslationSummary)
	}
	section("Key findings", r.KeyFindings)
	section("Recommended evidence", r.MissingEvidence)

	if len(r.Improvements) > 0 {
		fmt.Printf("\nImprovements\n%s\n", sep)
		for _, imp := range r.Improvements {
			before, after, rationale := imp.In(e.lang)
			fmt.Printf("[%s]\n  before: %s\n  after:  %s\n  why:    %s\n", imp.SectionID, before, after, rationale)
		}
	}
	if len(r.QuestionScores) > 0 {
		fmt.Printf("\nPer-question scores\n%s\n", sep)
		for _, q := range r.QuestionScores {
			fmt.Printf("%s  %s\n", stars(q.Score), q.Question)
		}
	}
	section("Next steps", r.NextSteps(e.lang))
	if d := r.Disclaimer(e.lang); d != "" {
		fmt.Printf("\n%s\n", d)
	}
}

func init() {
	checkCmd.Flags().StringP("type", "t", "pip", "Form type (module id, e.g. pip, uc, blue_badge)")
	checkCmd.Flags().Bool("json", false, "Print the raw report as JSON")
	checkCmd.Flags().String("save", "", "Directory to save the improvements text file in")
}
