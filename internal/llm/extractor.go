package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/amishk599/coldreach/internal/model"
)

// Ensure JobExtractor implements model.JobExtractor.
var _ model.JobExtractor = (*JobExtractor)(nil)

const (
	defaultTitle       = "Untitled"
	defaultDescription = "No description found"
)

// jobListSchema is the JSON Schema enforced server-side via structured outputs.
// The schema matches rawJobList exactly so the response can be parsed directly.
var jobListSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"jobs": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"title":       map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"skills": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required": []string{"title", "description", "skills"},
			},
		},
	},
	"required": []string{"jobs"},
}

// JobExtractor converts normalized careers-page text into job postings
// through a structured LLM completion.
type JobExtractor struct {
	provider Provider
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewJobExtractor creates an extractor backed by the given provider.
func NewJobExtractor(provider Provider, tmpl *template.Template, logger *slog.Logger) *JobExtractor {
	return &JobExtractor{
		provider: provider,
		tmpl:     tmpl,
		logger:   logger,
	}
}

// rawJobList is the JSON shape returned by the LLM (matches jobListSchema).
type rawJobList struct {
	Jobs []rawJob `json:"jobs"`
}

type rawJob struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// ExtractJobs sends the page text to the model and parses the structured
// response. Zero postings is a valid empty result. An unparsable response is
// the one checked failure, returned as *model.ExtractionError; transient
// provider failures are passed through untouched and are not retried here.
func (e *JobExtractor) ExtractJobs(ctx context.Context, text string) ([]model.Job, error) {
	var promptBuf bytes.Buffer
	if err := e.tmpl.Execute(&promptBuf, struct{ Text string }{Text: text}); err != nil {
		return nil, fmt.Errorf("render extraction prompt: %w", err)
	}

	raw, err := e.provider.CompleteStructured(ctx, promptBuf.String(), "job_list", jobListSchema)
	if err != nil {
		return nil, fmt.Errorf("llm complete: %w", err)
	}

	jobs, err := parseJobs(raw)
	if err != nil {
		return nil, &model.ExtractionError{Err: err}
	}

	e.logger.Debug("extracted jobs", "count", len(jobs))
	return jobs, nil
}

// parseJobs deserializes the LLM response and applies field defaults.
func parseJobs(raw string) ([]model.Job, error) {
	var rl rawJobList
	if err := json.Unmarshal([]byte(raw), &rl); err != nil {
		return nil, fmt.Errorf("unmarshal job list JSON: %w", err)
	}

	jobs := make([]model.Job, 0, len(rl.Jobs))
	for _, rj := range rl.Jobs {
		job := model.Job{
			Title:       rj.Title,
			Description: rj.Description,
			Skills:      dedupeSkills(rj.Skills),
		}
		if job.Title == "" {
			job.Title = defaultTitle
		}
		if job.Description == "" {
			job.Description = defaultDescription
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// dedupeSkills drops repeated skills case-insensitively, keeping first-seen
// order and the original casing. Never returns nil.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		key := normalizeKey(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
