package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently generated drafts",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum number of drafts to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if cfg.History.Path == "" {
		logger.Error("history.path is not set in config; drafts are not being recorded")
		os.Exit(1)
	}

	s, err := store.NewSQLiteStore(cfg.History.Path)
	if err != nil {
		logger.Error("failed to open draft store", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	drafts, err := s.ListDrafts(historyLimit)
	if err != nil {
		logger.Error("failed to list drafts", "error", err)
		os.Exit(1)
	}

	if len(drafts) == 0 {
		fmt.Println("No drafts recorded yet.")
		return nil
	}

	for _, d := range drafts {
		fmt.Printf("#%d  %s  %s\n", d.ID, d.CreatedAt.Format("2006-01-02 15:04"), d.JobTitle)
		fmt.Printf("    %s\n", d.URL)
		fmt.Printf("    %s\n\n", firstLine(d.Email))
	}
	return nil
}

// firstLine returns the first non-empty line of the email, as a preview.
func firstLine(email string) string {
	for _, line := range strings.Split(email, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
