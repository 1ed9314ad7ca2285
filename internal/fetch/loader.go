// Package fetch retrieves careers pages and reduces them to visible text.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/coldreach/internal/model"
)

// Ensure PageLoader implements model.DocumentLoader.
var _ model.DocumentLoader = (*PageLoader)(nil)

// PageLoader fetches a URL over HTTP and extracts the page's visible text,
// dropping script, style, and other non-content elements.
type PageLoader struct {
	httpClient *http.Client
	userAgent  string
}

// NewPageLoader creates a loader using the given client and User-Agent.
func NewPageLoader(httpClient *http.Client, userAgent string) *PageLoader {
	return &PageLoader{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Load fetches url and returns its visible text. Non-2xx responses are
// returned as *model.HTTPError so retry logic can inspect the status code.
// An empty body is an error: a blank careers page means nothing to extract.
func (l *PageLoader) Load(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Err:        fmt.Errorf("fetching %s", url),
		}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", url, err)
	}

	doc.Find("script, style, noscript, iframe, svg").Remove()
	text := doc.Text()

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty page body from %s", url)
	}

	return text, nil
}

// parseRetryAfter parses the Retry-After header value into a duration.
// Supports seconds format (e.g. "120"). Returns zero if absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return time.Duration(seconds) * time.Second
}
