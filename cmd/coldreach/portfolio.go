package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/portfolio"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Validate and print the portfolio CSV",
	Long:  "Load the configured portfolio CSV and print its tag → link entries.\nUse this to check the file before generating emails.",
	RunE:  runPortfolio,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	index := portfolio.NewIndex(cfg.Portfolio.Path, cfg.Portfolio.LinksPerSkill)
	if err := index.Load(); err != nil {
		logger.Error("portfolio failed to load", "error", err)
		os.Exit(1)
	}

	entries := index.Entries()
	fmt.Printf("%s: %d entries\n\n", cfg.Portfolio.Path, len(entries))
	for _, e := range entries {
		fmt.Printf("  %-24s %s\n", e.Tag, e.Link)
	}
	return nil
}
