package cmd

import (
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/githubnext/stratcalc/internal/logger"
	"github.com/githubnext/stratcalc/internal/server"
)

var logMCP = logger.New("cmd:mcp")

// newMCPCmd creates the command that serves the calculator over MCP stdio
func newMCPCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the calculator as MCP tools over stdio",
		Long: `Run an MCP server on stdin/stdout exposing two tools:

  calculate        apply sum, sub, mult or div to two integers
  list_operations  list the supported operation names

Diagnostics go to stderr and, with --log-dir, to the log file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer closeLogs()

			ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logMCP.Printf("Starting MCP server, version=%s, journal=%v", version, o.cfg.JournalActive())
			return server.New(version).Run(ctx, &sdk.StdioTransport{})
		},
	}
}
