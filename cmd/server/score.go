package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/sustainabuy/backend/internal/domain"
	"github.com/sustainabuy/backend/internal/usecase"
)

var (
	scoreName           string
	scoreBrand          string
	scoreMaterials      []string
	scoreCertifications []string
	scoreOrigin         string
	scoreJSON           bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute a product's sustainability score",
	Example: `  server score --brand Patagonia
  server score --brand Acme --material "Organic Cotton" --material Polyester`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreName, "name", "", "product name")
	scoreCmd.Flags().StringVar(&scoreBrand, "brand", "", "product brand")
	scoreCmd.Flags().StringSliceVar(&scoreMaterials, "material", nil, "material (repeatable)")
	scoreCmd.Flags().StringSliceVar(&scoreCertifications, "certification", nil, "certification (repeatable)")
	scoreCmd.Flags().StringVar(&scoreOrigin, "origin", "", "country of origin")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print only the JSON result")
}

func runScore(cmd *cobra.Command, args []string) error {
	if scoreBrand == "" && len(scoreMaterials) == 0 {
		return errors.New("--brand or --material is required")
	}

	score := usecase.CalculateSustainabilityScore(domain.ProductData{
		Name:           scoreName,
		Brand:          scoreBrand,
		Materials:      scoreMaterials,
		Certifications: scoreCertifications,
		Origin:         scoreOrigin,
	})

	out := cmd.OutOrStdout()
	if scoreJSON {
		return printJSON(out, score)
	}

	printSteps(out, score.Steps)
	scoreColor(score.Total).Fprintf(out, "\nSustainability score: %d/100\n", score.Total)
	for _, line := range score.Analysis {
		mutedColor.Fprintf(out, "  - %s\n", line)
	}
	printHeading(out, "\nBreakdown")
	return printJSON(out, score.Breakdown)
}
