package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/amishk599/coldreach/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockProvider is a stub Provider for testing.
type mockProvider struct {
	response   string
	err        error
	lastPrompt string
}

func (m *mockProvider) Complete(_ context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	return m.response, m.err
}

func (m *mockProvider) CompleteStructured(_ context.Context, prompt, _ string, _ map[string]any) (string, error) {
	m.lastPrompt = prompt
	return m.response, m.err
}

func newTestExtractor(provider Provider) *JobExtractor {
	return NewJobExtractor(provider, JobExtractionTemplate, discardLogger())
}

func TestExtractJobs_ParsesMultipleJobs(t *testing.T) {
	response := `{"jobs":[
		{"title":"Software Engineer","description":"Build services","skills":["Go","Kubernetes"]},
		{"title":"Data Engineer","description":"Build pipelines","skills":["Python","Spark"]}
	]}`
	extractor := newTestExtractor(&mockProvider{response: response})

	jobs, err := extractor.ExtractJobs(context.Background(), "some page text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(jobs))
	}
	if jobs[0].Title != "Software Engineer" {
		t.Errorf("jobs[0].Title = %q", jobs[0].Title)
	}
	if !reflect.DeepEqual(jobs[0].Skills, []string{"Go", "Kubernetes"}) {
		t.Errorf("jobs[0].Skills = %v", jobs[0].Skills)
	}
	if jobs[1].Title != "Data Engineer" {
		t.Errorf("jobs[1].Title = %q", jobs[1].Title)
	}
}

func TestExtractJobs_ZeroJobsIsNotAnError(t *testing.T) {
	extractor := newTestExtractor(&mockProvider{response: `{"jobs":[]}`})

	jobs, err := extractor.ExtractJobs(context.Background(), "a blog post, no jobs here")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("jobs = %v, want empty", jobs)
	}
}

func TestExtractJobs_AppliesDefaults(t *testing.T) {
	response := `{"jobs":[{"title":"","description":"","skills":null}]}`
	extractor := newTestExtractor(&mockProvider{response: response})

	jobs, err := extractor.ExtractJobs(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("jobs = %d, want 1", len(jobs))
	}
	if jobs[0].Title != "Untitled" {
		t.Errorf("Title = %q, want Untitled", jobs[0].Title)
	}
	if jobs[0].Description != "No description found" {
		t.Errorf("Description = %q, want fallback", jobs[0].Description)
	}
	if jobs[0].Skills == nil || len(jobs[0].Skills) != 0 {
		t.Errorf("Skills = %#v, want non-nil empty slice", jobs[0].Skills)
	}
}

func TestExtractJobs_DeduplicatesSkills(t *testing.T) {
	response := `{"jobs":[{"title":"SRE","description":"Keep it up","skills":["Go","go","Terraform","Go "]}]}`
	extractor := newTestExtractor(&mockProvider{response: response})

	jobs, err := extractor.ExtractJobs(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"Go", "Terraform"}
	if !reflect.DeepEqual(jobs[0].Skills, want) {
		t.Errorf("Skills = %v, want %v", jobs[0].Skills, want)
	}
}

func TestExtractJobs_MalformedResponseIsExtractionError(t *testing.T) {
	extractor := newTestExtractor(&mockProvider{response: "not json at all"})

	_, err := extractor.ExtractJobs(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
	var extErr *model.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *model.ExtractionError, got %T: %v", err, err)
	}
}

func TestExtractJobs_ProviderErrorPassedThrough(t *testing.T) {
	extractor := newTestExtractor(&mockProvider{err: errors.New("network down")})

	_, err := extractor.ExtractJobs(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error from provider failure")
	}
	var extErr *model.ExtractionError
	if errors.As(err, &extErr) {
		t.Error("transient provider failure should not be an ExtractionError")
	}
}

func TestExtractJobs_PromptContainsPageText(t *testing.T) {
	provider := &mockProvider{response: `{"jobs":[]}`}
	extractor := newTestExtractor(provider)

	_, err := extractor.ExtractJobs(context.Background(), "Senior Gopher wanted in Berlin")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.lastPrompt, "Senior Gopher wanted in Berlin") {
		t.Error("prompt does not contain the page text")
	}
}
