package cli

import (
	"github.com/spf13/cobra"

	"household-hub/internal/mcptools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve reminder tools over MCP (stdio)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcptools.NewServer(reminderSvc).ServeStdio()
	},
}
