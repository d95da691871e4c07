package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clicksy/clicksy-api/internal/observability"
	"github.com/clicksy/clicksy-api/internal/pricing"
	"github.com/clicksy/clicksy-api/internal/schemas"
	"github.com/clicksy/clicksy-api/internal/types"
)

var estimatePriceCmd = &cobra.Command{
	Use:   "estimate-price",
	Short: "Suggest a resale price for a marketplace item",
	Long:  "Runs the K-NN price estimator against a freshly generated market corpus, or a corpus file, and prints the suggested price.",
	RunE:  runEstimatePrice,
}

var (
	estimateBrand     string
	estimateCategory  string
	estimateCondition string
	estimateYear      int
	estimateSeed      int64
	estimateCorpus    string
)

func init() {
	estimatePriceCmd.Flags().StringVar(&estimateBrand, "brand", "", "Item brand (required)")
	estimatePriceCmd.Flags().StringVar(&estimateCategory, "category", "", "Item category (required)")
	estimatePriceCmd.Flags().StringVar(&estimateCondition, "condition", types.ConditionGood, "Condition label")
	estimatePriceCmd.Flags().IntVar(&estimateYear, "year", 0, "Purchase year (required)")
	estimatePriceCmd.Flags().Int64Var(&estimateSeed, "seed", 0, "Corpus seed; 0 uses market.seed or the clock")
	estimatePriceCmd.Flags().StringVar(&estimateCorpus, "corpus", "", "Read the corpus from a JSON file instead of generating it")

	for _, name := range []string{"brand", "category", "year"} {
		if err := estimatePriceCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(estimatePriceCmd)
}

func runEstimatePrice(cmd *cobra.Command, _ []string) error {
	corpus, err := estimateCorpusSource()
	if err != nil {
		return err
	}

	query := types.PriceQuery{
		Brand:          estimateBrand,
		Category:       estimateCategory,
		ConditionLabel: estimateCondition,
		Year:           estimateYear,
	}
	price, err := pricing.EstimatePrice(query, corpus)
	if err != nil {
		return fmt.Errorf("failed to estimate price: %w", err)
	}

	if verbose {
		p := observability.NewPrinter(cmd.ErrOrStderr())
		p.PrintCorpusSummary(corpus)
		p.PrintEstimate(query, price)
	}

	return writeJSON(cmd, "", types.EstimatePriceResponse{SuggestedPrice: price})
}

func estimateCorpusSource() ([]types.MarketListing, error) {
	if estimateCorpus != "" {
		corpus := []types.MarketListing{}
		if err := loadValidated(estimateCorpus, schemas.CorpusSchema, &corpus); err != nil {
			return nil, fmt.Errorf("corpus: %w", err)
		}
		return corpus, nil
	}

	seed := estimateSeed
	if seed == 0 && cfg != nil {
		seed = cfg.Market.Seed
	}
	return newGenerator(seed).Generate(), nil
}
