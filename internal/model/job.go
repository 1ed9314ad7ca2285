package model

import (
	"context"
	"time"
)

// Job is a single job posting extracted from a careers page.
type Job struct {
	Title       string   // "Untitled" when the posting omits it
	Description string   // "No description found" when the posting omits it
	Skills      []string // deduplicated, extraction order
}

// Draft is a generated cold email persisted in the history store.
type Draft struct {
	ID        int64
	URL       string
	JobTitle  string
	Email     string
	CreatedAt time.Time
}

// RunStatus is the terminal state of a successful pipeline run.
type RunStatus int

const (
	StatusDone   RunStatus = iota // at least one job was processed
	StatusNoJobs                  // extraction succeeded but found no postings
)

func (s RunStatus) String() string {
	if s == StatusNoJobs {
		return "no_jobs"
	}
	return "done"
}

// JobResult is the per-job outcome within a run: either an email draft or the
// error that prevented one. A failed job never aborts its siblings.
type JobResult struct {
	Job   Job
	Links []string // matched portfolio links, skills order, deduplicated
	Email string
	Err   error
}

// RunResult is the outcome of a pipeline run that got past extraction.
// Fatal fetch/load/extraction failures are returned as errors instead.
type RunResult struct {
	URL           string
	Status        RunStatus
	NormalizedLen int
	Jobs          []JobResult
}

// Failed returns the job results whose composition failed.
func (r *RunResult) Failed() []JobResult {
	var failed []JobResult
	for _, jr := range r.Jobs {
		if jr.Err != nil {
			failed = append(failed, jr)
		}
	}
	return failed
}

// DocumentLoader fetches the raw text content of a careers page.
type DocumentLoader interface {
	Load(ctx context.Context, url string) (string, error)
}

// JobExtractor turns normalized page text into structured job postings.
// An empty slice means the page contained no postings; it is not an error.
type JobExtractor interface {
	ExtractJobs(ctx context.Context, text string) ([]Job, error)
}

// EmailWriter composes a cold outreach email for one job and its matched
// portfolio links. Must produce a non-empty draft even when links is empty.
type EmailWriter interface {
	WriteMail(ctx context.Context, job Job, links []string) (string, error)
}

// LinkMatcher maps a job's required skills to portfolio links.
type LinkMatcher interface {
	// Load populates the matcher from its source. Idempotent: a reload
	// replaces the previous mapping wholesale.
	Load() error
	// Lookup returns links for the given skills, deduplicated in first-seen
	// order. An empty skills slice yields an empty result, never an error.
	Lookup(skills []string) []string
}

// DraftStore persists generated email drafts across runs.
type DraftStore interface {
	SaveDraft(url, jobTitle, email string) error
	ListDrafts(limit int) ([]Draft, error)
}
