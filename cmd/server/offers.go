package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/sustainabuy/backend/internal/domain"
	"github.com/sustainabuy/backend/internal/usecase"
)

var (
	offersBrand     string
	offersName      string
	offersVariant   string
	offersVariantID string
	offersPrice     float64
)

var offersCmd = &cobra.Command{
	Use:     "offers",
	Short:   "Quote marketplace offers for a product variant",
	Example: `  server offers --brand Allbirds --name "Wool Runners" --variant "Size 10" --price 110`,
	RunE:    runOffers,
}

func init() {
	offersCmd.Flags().StringVar(&offersBrand, "brand", "", "product brand")
	offersCmd.Flags().StringVar(&offersName, "name", "", "product name")
	offersCmd.Flags().StringVar(&offersVariant, "variant", "Standard Edition", "variant name")
	offersCmd.Flags().StringVar(&offersVariantID, "variant-id", "default", "variant id")
	offersCmd.Flags().Float64Var(&offersPrice, "price", 0, "variant base price (0 uses 100)")
}

func runOffers(cmd *cobra.Command, args []string) error {
	if offersName == "" {
		return errors.New("--name is required")
	}

	offers := usecase.GenerateMetaOffers(
		domain.OfferSubject{Brand: offersBrand, Name: offersName},
		domain.ProductVariant{ID: offersVariantID, Name: offersVariant, BasePrice: offersPrice},
	)
	usecase.SortOffersByPrice(offers)

	return printJSON(cmd.OutOrStdout(), offers)
}
