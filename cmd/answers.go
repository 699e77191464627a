package cmd

import (
	"fmt"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/questionnaire"
	"github.com/spf13/cobra"
)

var answersCmd = &cobra.Command{
	Use:   "answers",
	Short: "Show or clear the saved answers of a form",
}

var answersShowCmd = &cobra.Command{
	Use:   "show <module>",
	Short: "Print the saved answers of a form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		eng.Restore(cmd.Context())
		all, _ := cmd.Flags().GetBool("all")

		fmt.Println(entry.Form.Title.Get(e.lang))
		fmt.Println(strings.Repeat("─", 72))

		questions := eng.Visible()
		if all {
			questions = entry.Form.Questions
		}
		var answered int
		for _, q := range questions {
			a, _ := eng.Answer(q.ID)
			if a.Value.IsEmpty() && !all {
				continue
			}
			answered++
			fmt.Printf("%s\n  %s\n", q.Text.Get(e.lang), valueOrDash(a.Value))
			if q.StarEnabled || q.BookEnabled {
				fmt.Printf("  impact %d/%d  length %d/%d\n",
					a.Rating, questionnaire.MaxRating, a.Length, questionnaire.MaxLength)
			}
		}

		pos, total := eng.Progress()
		fmt.Printf("\n%d answered, %d visible questions, cursor at %d\n", answered, total, pos)
		return nil
	},
}

var answersResetCmd = &cobra.Command{
	Use:   "reset <module>",
	Short: "Clear the saved answers of a form",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		eng.Reset(cmd.Context())
		fmt.Printf("Answers for %s cleared.\n", entry.ID)
		return nil
	},
}

func valueOrDash(v questionnaire.Value) string {
	if v.IsEmpty() {
		return "-"
	}
	return v.String()
}

func init() {
	answersShowCmd.Flags().Bool("all", false, "Include hidden and unanswered questions")

	answersCmd.AddCommand(answersShowCmd)
	answersCmd.AddCommand(answersResetCmd)
}
