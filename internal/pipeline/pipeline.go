// Package pipeline sequences the cold-email run: fetch → normalize →
// extract → per-job lookup and composition.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amishk599/coldreach/internal/model"
	"github.com/amishk599/coldreach/internal/normalize"
)

// Pipeline owns one full run for a single careers-page URL.
type Pipeline struct {
	loader    model.DocumentLoader
	portfolio model.LinkMatcher
	extractor model.JobExtractor
	composer  model.EmailWriter
	store     model.DraftStore
	logger    *slog.Logger
}

// New creates a pipeline wired with all its dependencies.
func New(
	loader model.DocumentLoader,
	portfolio model.LinkMatcher,
	extractor model.JobExtractor,
	composer model.EmailWriter,
	store model.DraftStore,
	logger *slog.Logger,
) *Pipeline {
	return &Pipeline{
		loader:    loader,
		portfolio: portfolio,
		extractor: extractor,
		composer:  composer,
		store:     store,
		logger:    logger,
	}
}

// Run executes one pipeline run for url. Fetch, portfolio-load, and
// extraction failures are fatal and returned as typed errors; a composition
// failure is recorded in that job's result slot and the remaining jobs
// continue. Zero extracted postings is the distinct StatusNoJobs outcome,
// not an error. Jobs are processed strictly sequentially.
func (p *Pipeline) Run(ctx context.Context, url string) (*model.RunResult, error) {
	raw, err := p.loader.Load(ctx, url)
	if err != nil {
		return nil, &model.FetchError{URL: url, Err: err}
	}

	text := normalize.Clean(raw)
	p.logger.Debug("normalized page text", "url", url, "chars", len(text))

	// Load to completion before the first lookup; a reload replaces the
	// mapping wholesale, so every job in this run sees the same entries.
	if err := p.portfolio.Load(); err != nil {
		var loadErr *model.LoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &model.LoadError{Err: err}
	}

	jobs, err := p.extractor.ExtractJobs(ctx, text)
	if err != nil {
		// Unparsable output arrives as *model.ExtractionError; transient
		// provider failures keep their own type. Both are fatal here.
		return nil, fmt.Errorf("extracting jobs from %s: %w", url, err)
	}

	result := &model.RunResult{
		URL:           url,
		NormalizedLen: len(text),
	}

	if len(jobs) == 0 {
		result.Status = model.StatusNoJobs
		p.logger.Info("no job postings found", "url", url)
		return result, nil
	}

	result.Status = model.StatusDone
	for i, job := range jobs {
		jr := model.JobResult{Job: job}
		jr.Links = p.portfolio.Lookup(job.Skills)

		email, err := p.composer.WriteMail(ctx, job, jr.Links)
		if err != nil {
			// Scoped to this job; siblings continue.
			jr.Err = wrapComposition(job, err)
			p.logger.Warn("email composition failed",
				"url", url,
				"job_index", i,
				"job", job.Title,
				"error", err,
			)
			result.Jobs = append(result.Jobs, jr)
			continue
		}
		jr.Email = email

		if err := p.store.SaveDraft(url, job.Title, email); err != nil {
			// History is best-effort; the draft itself is still returned.
			p.logger.Warn("saving draft failed", "job", job.Title, "error", err)
		}

		result.Jobs = append(result.Jobs, jr)
	}

	p.logger.Info("run complete",
		"url", url,
		"jobs", len(result.Jobs),
		"failed", len(result.Failed()),
	)
	return result, nil
}

// wrapComposition ensures per-job failures surface as *model.CompositionError
// with the job named, whatever the composer returned.
func wrapComposition(job model.Job, err error) error {
	var compErr *model.CompositionError
	if errors.As(err, &compErr) {
		return err
	}
	return &model.CompositionError{JobTitle: job.Title, Err: err}
}
