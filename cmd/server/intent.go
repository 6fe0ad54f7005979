package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/sustainabuy/backend/internal/usecase"
)

var intentCmd = &cobra.Command{
	Use:   "intent <query>",
	Short: "Normalize a search query and print its intent",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		out := cmd.OutOrStdout()

		printHeading(out, "Normalized: %q", usecase.NormalizeQuery(query))
		return printJSON(out, usecase.ParseSearchIntent(query))
	},
}
