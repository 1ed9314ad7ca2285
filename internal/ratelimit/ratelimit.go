package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/amishk599/coldreach/internal/llm"
)

// Limiter enforces a minimum delay between consecutive calls.
type Limiter struct {
	mu       sync.Mutex
	lastCall time.Time
	minDelay time.Duration
}

// NewLimiter creates a limiter that enforces minDelay between calls.
func NewLimiter(minDelay time.Duration) *Limiter {
	return &Limiter{minDelay: minDelay}
}

// Wait blocks until enough time has passed since the previous call.
// Returns an error if the context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()

	if l.lastCall.IsZero() || now.Sub(l.lastCall) >= l.minDelay {
		// First call, or enough time has passed — proceed immediately.
		l.lastCall = now
		l.mu.Unlock()
		return nil
	}

	remaining := l.minDelay - now.Sub(l.lastCall)
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait: %w", ctx.Err())
	case <-time.After(remaining):
	}

	l.mu.Lock()
	l.lastCall = time.Now()
	l.mu.Unlock()

	return nil
}

// RateLimitedProvider is a decorator that spaces out LLM calls before
// delegating to the wrapped provider. Extraction and composition share one
// limiter so the backend sees at most one request per minDelay.
type RateLimitedProvider struct {
	inner   llm.Provider
	limiter *Limiter
}

// NewRateLimitedProvider wraps an llm.Provider with call spacing.
func NewRateLimitedProvider(inner llm.Provider, limiter *Limiter) *RateLimitedProvider {
	return &RateLimitedProvider{
		inner:   inner,
		limiter: limiter,
	}
}

// Complete waits for the limiter, then delegates to the wrapped provider.
func (p *RateLimitedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.inner.Complete(ctx, prompt)
}

// CompleteStructured waits for the limiter, then delegates to the wrapped provider.
func (p *RateLimitedProvider) CompleteStructured(ctx context.Context, prompt, schemaName string, schema map[string]any) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.inner.CompleteStructured(ctx, prompt, schemaName, schema)
}
