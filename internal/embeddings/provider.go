// Package embeddings produces vector representations of document content
// and chat queries for semantic search.
package embeddings

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/datareveal/docverse/config"
	"github.com/datareveal/docverse/pkg/logger"
)

// Provider embeds a single text. Implementations must reject empty input.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// OpenAIProvider implements Provider with the OpenAI embeddings API.
type OpenAIProvider struct {
	embedder embeddings.Embedder
	logger   logger.Logger
}

func NewOpenAIProvider(cfg *config.OpenAIConfig, log logger.Logger) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key not configured")
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}
	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &OpenAIProvider{embedder: embedder, logger: log}, nil
}

func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("cannot embed empty text")
	}
	vector, err := p.embedder.EmbedQuery(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	return vector, nil
}
