// Package llm turns raw OCR text into the canonical structured response
// and backs the query-intent and answer-generation calls. All model access
// goes through the narrow Completer interface so it can be swapped or
// mocked without touching pipeline logic.
package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/datareveal/docverse/config"
	"github.com/datareveal/docverse/pkg/logger"
)

// Completer is the single chat-completion contract the pipeline needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient implements Completer over the OpenAI chat API.
type OpenAIClient struct {
	llm    *openai.LLM
	logger logger.Logger
}

// NewOpenAIClient creates an OpenAI-backed completer. Callers that need
// JSON instruct for it in the prompt; the recovery cascade guards the output.
func NewOpenAIClient(cfg *config.OpenAIConfig, log logger.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key not configured")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}

	return &OpenAIClient{llm: client, logger: log}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, user),
		},
		llms.WithTemperature(0.1),
		llms.WithMaxTokens(4000),
	)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}
