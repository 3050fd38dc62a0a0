package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"ragbot/internal/config"
)

type openAIGenerator struct {
	client *openai.Client
	model  string
}

// NewFromConfig returns a Generator talking to an OpenAI-compatible chat
// completions endpoint. With no API key configured it degrades to canned
// mock responses so the service stays up in keyless environments; that mode
// is logged loudly and never substitutes for a failed real call.
func NewFromConfig(cfg config.LLMConfig, apiKey string) Generator {
	if apiKey == "" {
		slog.Warn("no LLM API key configured, generation runs in mock mode (set RAGBOT_LLM_API_KEY)")
		return mockGenerator{}
	}
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &openAIGenerator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

func (g *openAIGenerator) Generate(ctx context.Context, userPrompt, systemPrompt string, temperature float32, maxTokens int) (string, error) {
	var messages []openai.ChatCompletionMessage
	if systemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userPrompt,
	})

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// mockGenerator is the documented keyless degraded mode.
type mockGenerator struct{}

func (mockGenerator) Generate(_ context.Context, _, _ string, _ float32, _ int) (string, error) {
	return "(mock) I don't know based on the current document.", nil
}
