// Package llm wraps the text-generation capability behind a small interface.
package llm

import "context"

// Generator produces a chat-completion answer for a user prompt under a
// system instruction. Failures are surfaced to the caller; the orchestrator
// never retries.
type Generator interface {
	Generate(ctx context.Context, userPrompt, systemPrompt string, temperature float32, maxTokens int) (string, error)
}
