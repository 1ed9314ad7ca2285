package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validConfig = `
llm:
  model: gpt-4o-mini
  api_key: test-key
portfolio:
  path: portfolio.csv
sender:
  name: Jane Doe
  company: Acme Consulting
`

func TestLoad_ValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("LLM.BaseURL = %q, want default", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Timeout != 60*time.Second {
		t.Errorf("LLM.Timeout = %v, want default 60s", cfg.LLM.Timeout)
	}
	if cfg.Portfolio.LinksPerSkill != 2 {
		t.Errorf("Portfolio.LinksPerSkill = %d, want default 2", cfg.Portfolio.LinksPerSkill)
	}
	if cfg.Fetch.MaxRetries != 2 {
		t.Errorf("Fetch.MaxRetries = %d, want default 2", cfg.Fetch.MaxRetries)
	}
	if cfg.Fetch.Timeout != 30*time.Second {
		t.Errorf("Fetch.Timeout = %v, want default 30s", cfg.Fetch.Timeout)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("COLDREACH_TEST_KEY", "secret-from-env")
	content := `
llm:
  model: gpt-4o-mini
  api_key: ${COLDREACH_TEST_KEY}
portfolio:
  path: portfolio.csv
sender:
  name: Jane Doe
  company: Acme Consulting
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "secret-from-env" {
		t.Errorf("LLM.APIKey = %q, want expanded env value", cfg.LLM.APIKey)
	}
}

func TestLoad_ParsesDurations(t *testing.T) {
	content := `
llm:
  model: gpt-4o-mini
  api_key: test-key
  timeout: 90s
  min_delay: 2s
fetch:
  timeout: 10s
  retry_base_delay: 1s
portfolio:
  path: portfolio.csv
sender:
  name: Jane Doe
  company: Acme Consulting
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Timeout != 90*time.Second {
		t.Errorf("LLM.Timeout = %v", cfg.LLM.Timeout)
	}
	if cfg.LLM.MinDelay != 2*time.Second {
		t.Errorf("LLM.MinDelay = %v", cfg.LLM.MinDelay)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Errorf("Fetch.Timeout = %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.RetryBaseDelay != 1*time.Second {
		t.Errorf("Fetch.RetryBaseDelay = %v", cfg.Fetch.RetryBaseDelay)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "llm: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	content := `
llm:
  model: gpt-4o-mini
portfolio:
  path: portfolio.csv
sender:
  name: Jane Doe
  company: Acme Consulting
`
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("Load: expected error for missing api_key")
	}
}

func TestLoad_MissingPortfolioPath(t *testing.T) {
	content := `
llm:
  model: gpt-4o-mini
  api_key: test-key
sender:
  name: Jane Doe
  company: Acme Consulting
`
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("Load: expected error for missing portfolio.path")
	}
}

func TestLoad_LinksPerSkillOutOfRange(t *testing.T) {
	content := `
llm:
  model: gpt-4o-mini
  api_key: test-key
portfolio:
  path: portfolio.csv
  links_per_skill: 9
sender:
  name: Jane Doe
  company: Acme Consulting
`
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("Load: expected error for links_per_skill out of range")
	}
}

func TestLoad_MissingSender(t *testing.T) {
	content := `
llm:
  model: gpt-4o-mini
  api_key: test-key
portfolio:
  path: portfolio.csv
`
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("Load: expected error for missing sender")
	}
}

func TestLoad_BadDuration(t *testing.T) {
	content := `
llm:
  model: gpt-4o-mini
  api_key: test-key
  timeout: not-a-duration
portfolio:
  path: portfolio.csv
sender:
  name: Jane Doe
  company: Acme Consulting
`
	if _, err := Load(writeConfig(t, content)); err == nil {
		t.Fatal("Load: expected error for bad duration")
	}
}
