// Package llm is the out-of-core prompt generator adapter: the core only
// produces a prompt string (internal/orchestrator's llm_prompt_input); an
// optional Generator turns that prompt into natural-language text when a
// provider is configured.
package llm

import "context"

// Generator turns a finished prompt into natural-language output. Nil is a
// valid Generator configuration — the core functions fully without one,
// returning the prompt itself for an external caller to render.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// NoOpGenerator is used when no provider is configured; it echoes the
// prompt back unchanged rather than failing the request.
type NoOpGenerator struct{}

func (NoOpGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return prompt, nil
}
