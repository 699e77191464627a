package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/unlock"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <module> [question]",
	Short: "Preview the AI guidance for saved answers",
	Long: `Build the guidance prompt for each answered question of a form (or just the
one named) and print the model's draft.

With --prompt-only nothing is sent to a model; useful for checking prompt
wording after editing module content.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("prompt-only", false, "Print the prompt instead of calling the model")
}

func runPreview(cmd *cobra.Command, args []string) error {
	promptOnly, _ := cmd.Flags().GetBool("prompt-only")
	ctx := cmd.Context()

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	entry, err := e.module(args[0])
	if err != nil {
		return err
	}
	if entry.Form == nil {
		return fmt.Errorf("%s has no questions", entry.ID)
	}

	eng := questionnaire.New(entry.Form, e.kv, questionnaire.WithLogger(e.logger))
	eng.Restore(ctx)
	all := eng.Answers()

	var targets []*questionnaire.Question
	for _, q := range eng.Visible() {
		if len(args) == 2 && q.ID != args[1] {
			continue
		}
		targets = append(targets, q)
	}
	if len(targets) == 0 {
		return fmt.Errorf("no visible question %q in %s", strings.Join(args[1:], ""), entry.ID)
	}

	var svc *guidance.Service
	if !promptOnly {
		if !e.ledger.Unlocked(ctx, entry.ID) {
			return fmt.Errorf("%s: %w (run: ukpip unlock %s)", entry.ID, unlock.ErrLocked, entry.ID)
		}
		provider, err := e.provider(ctx)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		svc = guidance.NewService(provider, e.guidanceConfig(), guidance.WithLogger(e.logger))
		defer svc.Close()
	}

	sep := strings.Repeat("─", 60)
	for _, q := range targets {
		in := guidance.Input{Module: entry.Form, Question: q, Answer: all[q.ID], All: all, Lang: e.lang}
		if guidance.ShouldSkip(q, in.Answer) {
			continue
		}

		fmt.Println(sep)
		fmt.Printf("%s  %s\n", q.ID, q.Text.Get(e.lang))
		fmt.Println(sep)

		if promptOnly {
			fmt.Println(guidance.BuildPrompt(entry.Form, q, in.Answer, all, e.lang))
			continue
		}

		resp := svc.Draft(ctx, in)
		if resp == nil {
			continue
		}
		if resp.Failed() {
			fmt.Println("error:", resp.Err)
		}
		keys := make([]string, 0, len(resp.Fields))
		for k := range resp.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s:\n%s\n\n", k, resp.Fields[k])
		}
	}
	return nil
}
