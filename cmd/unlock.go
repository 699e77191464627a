package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/checkout"
	"github.com/spf13/cobra"
)

var unlockCmd = &cobra.Command{
	Use:   "unlock <module>",
	Short: "Buy access to a form",
	Long: `Start a checkout for a form and wait for the payment to complete.

The checkout link is printed; open it in a browser. Without
UKPIP_CHECKOUT_ENDPOINT the simulated gateway completes the payment by itself.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		history, _ := cmd.Flags().GetBool("history")
		revoke, _ := cmd.Flags().GetBool("revoke")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if history {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return printCheckoutHistory(ctx, e, id)
		}
		if len(args) == 0 {
			return errors.New("requires a module id")
		}

		entry, err := e.module(args[0])
		if err != nil {
			return err
		}

		if revoke {
			if err := e.ledger.Revoke(ctx, entry.ID); err != nil {
				return err
			}
			fmt.Printf("%s is locked again.\n", entry.ID)
			return nil
		}

		if e.ledger.Unlocked(ctx, entry.ID) {
			fmt.Printf("%s is already unlocked.\n", entry.ID)
			return nil
		}

		flow, err := e.checkoutFlow()
		if err != nil {
			return err
		}

		fmt.Printf("%s: £%s\n", entry.Name.Get(e.lang), entry.Price())
		rec, err := flow.Run(ctx, entry.ID, e.lang, func(url string) {
			fmt.Printf("Open this link to pay:\n\n  %s\n\nWaiting for confirmation...\n", url)
			if flow.Simulated() {
				go func() {
					if err := checkout.Visit(ctx, url); err != nil {
						fmt.Fprintf(os.Stderr, "warning: simulated payment: %v\n", err)
					}
				}()
			}
		})
		switch {
		case errors.Is(err, checkout.ErrCancelled):
			fmt.Println("Payment was cancelled. Nothing was charged.")
			return nil
		case err != nil:
			return err
		}

		if rec.UsesLeft > 1 {
			fmt.Printf("Unlocked %s (%d uses).\n", entry.ID, rec.UsesLeft)
		} else {
			fmt.Printf("Unlocked %s.\n", entry.ID)
		}
		return nil
	},
}

func printCheckoutHistory(ctx context.Context, e *env, moduleID string) error {
	sessions, err := e.store.CheckoutRepo().List(ctx, moduleID)
	if err != nil {
		return fmt.Errorf("list checkouts: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Println("No checkouts recorded.")
		return nil
	}

	fmt.Printf("%-19s  %-18s  %-10s  %-10s  %s\n", "Started", "Module", "Provider", "Status", "Session")
	fmt.Println(strings.Repeat("─", 100))
	for _, s := range sessions {
		fmt.Printf("%-19s  %-18s  %-10s  %-10s  %s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			s.ModuleID, s.Provider, s.Status, s.ID)
	}
	return nil
}

func init() {
	unlockCmd.Flags().Bool("history", false, "List past checkout sessions")
	unlockCmd.Flags().Bool("revoke", false, "Lock the module again")
}
