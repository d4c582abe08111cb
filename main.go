package main

import (
	"os"

	"github.com/spf13/cobra"

	"datacleaners/config"
	"datacleaners/services"
	"datacleaners/utils"
)

var (
	cfg      *config.Config
	logger   *utils.Logger
	pipeline *services.Pipeline
)

func main() {
	logger = utils.NewLogger()
	cfg = config.Load()
	logger.SetDebug(cfg.LogDebug)
	pipeline = services.NewPipeline(logger, cfg.EducationalTerms, cfg.CommercialTerms)

	rootCmd := &cobra.Command{
		Use:           "datacleaners",
		Short:         "Lead and keyword data cleaners",
		Long:          `Cleans scraped business-listing exports and filters Google Keyword Planner exports down to commercial, high-intent keywords.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(createServeCmd())
	rootCmd.AddCommand(createLeadsCmd())
	rootCmd.AddCommand(createKeywordsCmd())
	rootCmd.AddCommand(createReportCmd())
	rootCmd.AddCommand(createCleanExportCmd())

	if err := rootCmd.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
