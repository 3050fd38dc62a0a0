// Package embeddings maps text to fixed-dimension dense vectors.
package embeddings

import (
	"context"
	"fmt"

	"ragbot/internal/config"
)

// Provider embeds text into fixed-length, L2-normalized float vectors.
//
// Implementations must be deterministic for the same input text and model.
// Embed returns one vector per input text, in input order; empty or
// whitespace-only inputs are skipped and yield a nil vector at their
// position, never a zero vector.
type Provider interface {
	ModelID() string
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}

// NewFromConfig returns an embeddings provider.
//
// The "hash" provider is a deterministic offline fallback for development and
// tests; everything else goes through the OpenAI-compatible embeddings API.
func NewFromConfig(cfg config.EmbeddingConfig, apiKey string) (Provider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("embedding model is not configured (set RAGBOT_EMBEDDING_MODEL)")
	}
	if cfg.Model == "hash" {
		return NewHash(defaultHashDim), nil
	}
	if apiKey == "" {
		return nil, fmt.Errorf("embeddings API key is not configured (set RAGBOT_EMBEDDINGS_API_KEY)")
	}
	return NewOpenAI(cfg, apiKey), nil
}
