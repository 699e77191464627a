package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/sfmahdi38-cmd/ukpip-site/internal/guidance"
	"github.com/sfmahdi38-cmd/ukpip-site/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the form tools to an MCP client over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		// stdout carries the protocol.
		e.setLogger(log.New(os.Stderr, "ukpip: ", log.LstdFlags))

		d := mcpserver.Deps{
			Catalog: e.catalog,
			Store:   e.kv,
			Ledger:  e.ledger,
			Lang:    e.lang,
		}
		provider, err := e.provider(cmd.Context())
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: LLM provider not configured: %v\n", err)
		} else {
			svc := guidance.NewService(provider, e.guidanceConfig(), guidance.WithLogger(e.logger))
			defer svc.Close()
			d.Guidance = svc
		}

		return mcpserver.ServeStdio(mcpserver.New(d, version))
	},
}
