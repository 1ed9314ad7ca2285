package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/amishk599/coldreach/internal/config"
	"github.com/amishk599/coldreach/internal/fetch"
	"github.com/amishk599/coldreach/internal/llm"
	"github.com/amishk599/coldreach/internal/model"
	"github.com/amishk599/coldreach/internal/pipeline"
	"github.com/amishk599/coldreach/internal/portfolio"
	"github.com/amishk599/coldreach/internal/ratelimit"
	"github.com/amishk599/coldreach/internal/retry"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "coldreach",
	Short: "Cold outreach emails from job postings",
	Long:  "Coldreach turns a job-posting URL into personalized cold outreach emails,\nbacked by a portfolio of past work matched to each posting's skills.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: COLDREACH_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > COLDREACH_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("COLDREACH_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
}

// setupProvider builds the LLM provider, with call spacing when configured.
func setupProvider(cfg *config.Config, logger *slog.Logger) llm.Provider {
	httpClient := &http.Client{Timeout: cfg.LLM.Timeout}
	var provider llm.Provider = llm.NewOpenAIProvider(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, httpClient)

	if cfg.LLM.MinDelay > 0 {
		limiter := ratelimit.NewLimiter(cfg.LLM.MinDelay)
		provider = ratelimit.NewRateLimitedProvider(provider, limiter)
		logger.Info("llm rate limiting enabled", "min_delay", cfg.LLM.MinDelay.String())
	}
	return provider
}

// buildPipeline wires a full pipeline from config: retrying page loader,
// CSV portfolio index, and LLM-backed extractor and composer.
func buildPipeline(cfg *config.Config, draftStore model.DraftStore, logger *slog.Logger) *pipeline.Pipeline {
	fetchClient := &http.Client{Timeout: cfg.Fetch.Timeout}
	var loader model.DocumentLoader = fetch.NewPageLoader(fetchClient, cfg.Fetch.UserAgent)
	if cfg.Fetch.MaxRetries > 0 {
		loader = retry.NewRetryLoader(loader, cfg.Fetch.MaxRetries, cfg.Fetch.RetryBaseDelay, logger)
	}

	index := portfolio.NewIndex(cfg.Portfolio.Path, cfg.Portfolio.LinksPerSkill)
	provider := setupProvider(cfg, logger)
	extractor := llm.NewJobExtractor(provider, llm.JobExtractionTemplate, logger)
	composer := llm.NewEmailComposer(provider, llm.ColdEmailTemplate, cfg.Sender, logger)

	return pipeline.New(loader, index, extractor, composer, draftStore, logger)
}
