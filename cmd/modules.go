package cmd

import (
	"fmt"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/content"
	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules",
	Short: "List the forms with their price and unlock state",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		verbose, _ := cmd.Flags().GetBool("questions")

		// Header.
		fmt.Printf("%-18s  %-36s  %8s  %-10s  %s\n",
			"ID", "Name", "Price", "State", "Questions")
		fmt.Println(strings.Repeat("─", 92))

		for _, entry := range e.catalog.List() {
			name := entry.Name.Get(e.lang)
			if len([]rune(name)) > 36 {
				name = string([]rune(name)[:33]) + "..."
			}

			state := "locked"
			if rec, err := e.ledger.Status(ctx, entry.ID); err == nil && rec.Unlocked {
				state = "unlocked"
				if entry.Kind == content.KindChecker {
					state = fmt.Sprintf("%d uses", rec.UsesLeft)
				}
			}

			questions := "-"
			if entry.Form != nil {
				questions = fmt.Sprintf("%d", len(entry.Form.Questions))
			}

			fmt.Printf("%-18s  %-36s  %8s  %-10s  %s\n",
				entry.ID, name, "£"+entry.Price(), state, questions)

			if verbose && entry.Form != nil {
				for _, q := range entry.Form.Questions {
					gate := ""
					for _, c := range q.When {
						gate += fmt.Sprintf("  [when %s=%s]", c.QuestionID, c.Equals)
					}
					fmt.Printf("    %-24s  %-13s%s\n", q.ID, q.Kind, gate)
				}
			}
		}

		fmt.Printf("\n%d modules\n", len(e.catalog.List()))
		return nil
	},
}

func init() {
	modulesCmd.Flags().BoolP("questions", "q", false, "Also list each module's questions")
}
