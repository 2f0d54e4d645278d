package main

import (
	"encoding/json"
	"fmt"

	"quote-service/internal/models"
	"quote-service/internal/pricing"

	"github.com/spf13/cobra"
)

var quoteFlags struct {
	product       string
	risk          string
	age           float64
	plan          string
	modifications bool
	pricingFile   string
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Price a tractor offline without touching the database",
	Long: `Run the premium calculation for one tractor and print the result with its
breakdown as JSON. Rules come from --pricing when given, else the built-in
defaults. Useful for checking a pricing file before rolling it out.`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().StringVar(&quoteFlags.product, "product", "Utility Tractor", "product type name")
	quoteCmd.Flags().StringVar(&quoteFlags.risk, "risk", string(models.RiskMedium), "risk category: low, medium, high")
	quoteCmd.Flags().Float64Var(&quoteFlags.age, "age", 0, "age in years")
	quoteCmd.Flags().StringVar(&quoteFlags.plan, "plan", string(models.PlanStandard), "plan type")
	quoteCmd.Flags().BoolVar(&quoteFlags.modifications, "modifications", false, "tractor has modifications")
	quoteCmd.Flags().StringVar(&quoteFlags.pricingFile, "pricing", "", "pricing YAML file")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := pricing.DefaultConfig()
	if quoteFlags.pricingFile != "" {
		loaded, err := pricing.LoadFile(quoteFlags.pricingFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if quoteFlags.age < 0 {
		return fmt.Errorf("%w: age must be >= 0", models.ErrValidation)
	}

	productType := models.ProductType{
		Name:         quoteFlags.product,
		RiskCategory: models.RiskCategory(quoteFlags.risk),
	}
	result, err := pricing.Calculate(cfg, productType, quoteFlags.age, models.PlanType(quoteFlags.plan), quoteFlags.modifications)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
