package main

import (
	"github.com/spf13/cobra"

	"github.com/sustainabuy/backend/internal/delivery/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve score, offer and intent tools over MCP stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcp.Serve()
	},
}
