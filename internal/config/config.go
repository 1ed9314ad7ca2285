package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the coldreach pipeline.
type Config struct {
	LLM       LLMConfig
	Portfolio PortfolioConfig
	Fetch     FetchConfig
	History   HistoryConfig
	Sender    SenderConfig
}

// LLMConfig controls the OpenAI-compatible completion backend.
type LLMConfig struct {
	BaseURL  string        // defaults to https://api.openai.com/v1
	Model    string        // model identifier, e.g. "gpt-4o-mini"
	APIKey   string        // expanded from env var by Load
	Timeout  time.Duration // per-request timeout
	MinDelay time.Duration // minimum gap between consecutive LLM calls, zero disables
}

// PortfolioConfig points at the skill→link CSV and tunes lookup.
type PortfolioConfig struct {
	Path          string // CSV with techstack and links columns
	LinksPerSkill int    // cap on links collected per query skill
}

// FetchConfig controls careers-page retrieval.
type FetchConfig struct {
	Timeout        time.Duration
	UserAgent      string
	MaxRetries     int           // additional attempts after the first failure
	RetryBaseDelay time.Duration // delay before the first retry, doubled each retry
}

// HistoryConfig controls the generated-draft store.
type HistoryConfig struct {
	Path string `yaml:"path"` // SQLite file, empty disables persistence
}

// SenderConfig is the persona woven into every generated email.
type SenderConfig struct {
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Company string `yaml:"company"`
	Pitch   string `yaml:"pitch"` // one-line description of what the sender's company does
}

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultUserAgent     = "coldreach/1.0 (+https://github.com/amishk599/coldreach)"
)

// rawConfig is used for YAML unmarshaling (snake_case fields and durations as strings).
type rawConfig struct {
	LLM       rawLLMConfig       `yaml:"llm"`
	Portfolio rawPortfolioConfig `yaml:"portfolio"`
	Fetch     rawFetchConfig     `yaml:"fetch"`
	History   HistoryConfig      `yaml:"history"`
	Sender    SenderConfig       `yaml:"sender"`
}

type rawLLMConfig struct {
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	Timeout  string `yaml:"timeout"`
	MinDelay string `yaml:"min_delay"`
}

type rawPortfolioConfig struct {
	Path          string `yaml:"path"`
	LinksPerSkill int    `yaml:"links_per_skill"`
}

type rawFetchConfig struct {
	Timeout        string `yaml:"timeout"`
	UserAgent      string `yaml:"user_agent"`
	MaxRetries     *int   `yaml:"max_retries"`
	RetryBaseDelay string `yaml:"retry_base_delay"`
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables (api_key: ${OPENAI_API_KEY})
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	llmTimeout := 60 * time.Second // default
	if raw.LLM.Timeout != "" {
		llmTimeout, err = time.ParseDuration(raw.LLM.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse llm.timeout %q: %w", raw.LLM.Timeout, err)
		}
	}

	var llmMinDelay time.Duration
	if raw.LLM.MinDelay != "" {
		llmMinDelay, err = time.ParseDuration(raw.LLM.MinDelay)
		if err != nil {
			return nil, fmt.Errorf("parse llm.min_delay %q: %w", raw.LLM.MinDelay, err)
		}
	}

	fetchTimeout := 30 * time.Second // default
	if raw.Fetch.Timeout != "" {
		fetchTimeout, err = time.ParseDuration(raw.Fetch.Timeout)
		if err != nil {
			return nil, fmt.Errorf("parse fetch.timeout %q: %w", raw.Fetch.Timeout, err)
		}
	}

	retryBaseDelay := 5 * time.Second // default
	if raw.Fetch.RetryBaseDelay != "" {
		retryBaseDelay, err = time.ParseDuration(raw.Fetch.RetryBaseDelay)
		if err != nil {
			return nil, fmt.Errorf("parse fetch.retry_base_delay %q: %w", raw.Fetch.RetryBaseDelay, err)
		}
	}

	maxRetries := 2 // default
	if raw.Fetch.MaxRetries != nil {
		maxRetries = *raw.Fetch.MaxRetries
	}

	userAgent := raw.Fetch.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	baseURL := raw.LLM.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}

	linksPerSkill := raw.Portfolio.LinksPerSkill
	if linksPerSkill == 0 {
		linksPerSkill = 2 // default
	}

	cfg := &Config{
		LLM: LLMConfig{
			BaseURL:  baseURL,
			Model:    raw.LLM.Model,
			APIKey:   raw.LLM.APIKey,
			Timeout:  llmTimeout,
			MinDelay: llmMinDelay,
		},
		Portfolio: PortfolioConfig{
			Path:          raw.Portfolio.Path,
			LinksPerSkill: linksPerSkill,
		},
		Fetch: FetchConfig{
			Timeout:        fetchTimeout,
			UserAgent:      userAgent,
			MaxRetries:     maxRetries,
			RetryBaseDelay: retryBaseDelay,
		},
		History: raw.History,
		Sender:  raw.Sender,
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required (set it or the env var it expands from)")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm.model is required, e.g. \"gpt-4o-mini\"")
	}
	if cfg.Portfolio.Path == "" {
		return fmt.Errorf("portfolio.path is required")
	}
	if cfg.Portfolio.LinksPerSkill < 1 || cfg.Portfolio.LinksPerSkill > 5 {
		return fmt.Errorf("portfolio.links_per_skill must be between 1 and 5, got %d", cfg.Portfolio.LinksPerSkill)
	}
	if cfg.Fetch.MaxRetries < 0 {
		return fmt.Errorf("fetch.max_retries must not be negative, got %d", cfg.Fetch.MaxRetries)
	}
	if cfg.Sender.Name == "" {
		return fmt.Errorf("sender.name is required")
	}
	if cfg.Sender.Company == "" {
		return fmt.Errorf("sender.company is required")
	}
	return nil
}
