package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/model"
	"github.com/amishk599/coldreach/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review <url>",
	Short: "Generate and browse drafts interactively",
	Long:  "Run the pipeline for <url> with a progress spinner, then browse the\ngenerated emails in an interactive viewer with clipboard copy.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record generated drafts")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
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

	result, err := review.RunLoader(url, func(ctx context.Context) (*model.RunResult, error) {
		return p.Run(ctx, url)
	})
	if err != nil {
		logger.Error("run failed", "url", url, "error", err)
		os.Exit(1)
	}

	if result.Status == model.StatusNoJobs {
		logger.Info("no job postings found on this page", "url", url)
		return nil
	}

	return review.RunBrowser(result)
}
