package embeddings

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"ragbot/internal/config"
)

// embedBatchSize caps how many texts go into one embeddings request.
const embedBatchSize = 32

type openAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAI constructs a provider backed by an OpenAI-compatible embeddings
// endpoint. A custom base URL allows pointing it at any compatible service.
func NewOpenAI(cfg config.EmbeddingConfig, apiKey string) Provider {
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &openAIProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (p *openAIProvider) ModelID() string {
	return "openai:" + p.model
}

func (p *openAIProvider) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))

	// Whitespace-only inputs are skipped up front; the API would either
	// reject them or hand back meaningless vectors.
	valid := make([]string, 0, len(texts))
	validIdx := make([]int, 0, len(texts))
	for i, t := range texts {
		if strings.TrimSpace(t) == "" {
			continue
		}
		valid = append(valid, t)
		validIdx = append(validIdx, i)
	}

	for start := 0; start < len(valid); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		resp, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(p.model),
			Input: batch,
		})
		if err != nil {
			return nil, fmt.Errorf("embeddings request failed: %w", err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("embeddings count mismatch: got %d want %d", len(resp.Data), len(batch))
		}
		for j, item := range resp.Data {
			raw := item.Embedding
			v := make([]float32, len(raw))
			for k := range raw {
				v[k] = float32(raw[k])
			}
			l2normalize(v)
			out[validIdx[start+j]] = v
		}
	}
	return out, nil
}

func (p *openAIProvider) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	vs, err := p.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if vs[0] == nil {
		return nil, fmt.Errorf("cannot embed empty text")
	}
	return vs[0], nil
}
