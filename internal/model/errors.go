package model

import (
	"fmt"
	"time"
)

// HTTPError wraps an HTTP status code so retry logic can inspect it.
type HTTPError struct {
	StatusCode int
	RetryAfter time.Duration // from Retry-After header, zero if absent
	Err        error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// FetchError means the careers page could not be retrieved. Fatal: the run
// has nothing to work with.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// LoadError means the portfolio source is missing or malformed. Fatal when it
// occurs before the first lookup of a run.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading portfolio %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ExtractionError means the model's job-extraction response could not be
// parsed. Fatal: none of the extracted jobs can be trusted.
type ExtractionError struct {
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting jobs: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// CompositionError means email generation failed for a single job. Scoped to
// that job; sibling jobs in the same run continue.
type CompositionError struct {
	JobTitle string
	Err      error
}

func (e *CompositionError) Error() string {
	return fmt.Sprintf("composing email for %q: %v", e.JobTitle, e.Err)
}

func (e *CompositionError) Unwrap() error {
	return e.Err
}
