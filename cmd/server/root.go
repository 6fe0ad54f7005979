package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var noColor bool

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "SustainaBuy backend: product search, sustainability scoring and offer comparison",
	Long: `SustainaBuy backend serves the product catalog API and exposes the core
functions for local use.

Use this tool to:
- Run the HTTP API (serve)
- Run the MCP tool server over stdio (mcp)
- Score a product, quote offers or parse a search query from the shell`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(offersCmd)
	rootCmd.AddCommand(intentCmd)
}
