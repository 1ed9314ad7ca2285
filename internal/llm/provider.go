package llm

import "context"

// Provider is the completion backend used by the extractor and composer.
// CompleteStructured constrains the response to a JSON schema enforced
// server-side; Complete returns free-form text.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
	CompleteStructured(ctx context.Context, prompt, schemaName string, schema map[string]any) (string, error)
}
