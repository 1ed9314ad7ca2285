package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/model"
	"github.com/amishk599/coldreach/internal/store"
)

var noHistory bool

var generateCmd = &cobra.Command{
	Use:   "generate <url>",
	Short: "Generate cold emails for a job-posting URL",
	Long:  "Fetch the careers page at <url>, extract its job postings, match them\nagainst the portfolio, and print one cold email per posting.",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record generated drafts")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)
	url := args[0]

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	draftStore, closeStore, err := openDraftStore(cfg.History.Path, noHistory)
	if err != nil {
		logger.Error("failed to open draft store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	p := buildPipeline(cfg, draftStore, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx, url)
	if err != nil {
		logger.Error("run failed", "url", url, "error", err)
		os.Exit(1)
	}

	printResult(result)

	if len(result.Failed()) > 0 {
		os.Exit(1)
	}
	return nil
}

// openDraftStore returns the configured store, or a NopStore when history is
// disabled by flag or by an empty history.path.
func openDraftStore(path string, disabled bool) (model.DraftStore, func(), error) {
	if disabled || path == "" {
		return store.NewNopStore(), func() {}, nil
	}
	s, err := store.NewSQLiteStore(path)
	if err != nil {
		return nil, nil, err
	}
	return s, func() { s.Close() }, nil
}

func printResult(result *model.RunResult) {
	fmt.Printf("URL: %s\n", result.URL)
	fmt.Printf("Normalized text: %d chars\n", result.NormalizedLen)

	if result.Status == model.StatusNoJobs {
		fmt.Println("No job postings found on this page. Try another URL.")
		return
	}

	fmt.Printf("Extracted %d job posting(s)\n", len(result.Jobs))
	for i, jr := range result.Jobs {
		fmt.Printf("\n--- Job #%d: %s ---\n", i+1, jr.Job.Title)
		if len(jr.Job.Skills) > 0 {
			fmt.Printf("Skills: %s\n", strings.Join(jr.Job.Skills, ", "))
		}
		if len(jr.Links) > 0 {
			fmt.Printf("Portfolio links: %s\n", strings.Join(jr.Links, " "))
		}
		if jr.Err != nil {
			fmt.Printf("FAILED: %v\n", jr.Err)
			continue
		}
		fmt.Printf("\n%s\n", jr.Email)
	}
}
