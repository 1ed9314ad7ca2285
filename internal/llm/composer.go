package llm

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/amishk599/coldreach/internal/config"
	"github.com/amishk599/coldreach/internal/model"
)

// Ensure EmailComposer implements model.EmailWriter.
var _ model.EmailWriter = (*EmailComposer)(nil)

// EmailComposer turns one job posting and its matched portfolio links into a
// cold outreach email through a free-form LLM completion.
type EmailComposer struct {
	provider Provider
	tmpl     *template.Template
	sender   config.SenderConfig
	logger   *slog.Logger
}

// NewEmailComposer creates a composer writing as the given sender persona.
func NewEmailComposer(provider Provider, tmpl *template.Template, sender config.SenderConfig, logger *slog.Logger) *EmailComposer {
	return &EmailComposer{
		provider: provider,
		tmpl:     tmpl,
		sender:   sender,
		logger:   logger,
	}
}

// WriteMail composes an email for job. Works with zero links: the prompt then
// forbids portfolio references instead of fabricating them. Blank model
// output is returned as *model.CompositionError, scoped to this job.
func (c *EmailComposer) WriteMail(ctx context.Context, job model.Job, links []string) (string, error) {
	var promptBuf bytes.Buffer
	data := struct {
		Job    model.Job
		Links  []string
		Sender config.SenderConfig
	}{Job: job, Links: links, Sender: c.sender}

	if err := c.tmpl.Execute(&promptBuf, data); err != nil {
		return "", fmt.Errorf("render email prompt: %w", err)
	}

	raw, err := c.provider.Complete(ctx, promptBuf.String())
	if err != nil {
		return "", fmt.Errorf("llm complete: %w", err)
	}

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", &model.CompositionError{
			JobTitle: job.Title,
			Err:      fmt.Errorf("model returned an empty email"),
		}
	}

	c.logger.Debug("composed email", "job", job.Title, "links", len(links), "chars", len(email))
	return email, nil
}
