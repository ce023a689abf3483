// Package retrieval answers conversational queries over stored documents:
// intent analysis, semantic search with metadata filters, and grounded
// answer generation.
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

const (
	topK             = 5
	contextCharLimit = 1500

	embedFailedAnswer = "Could not process the query to generate an embedding."
	noDocumentsAnswer = "I could not find any relevant documents matching your criteria."
)

// IntentParser splits a question into metadata filters and a semantic query.
type IntentParser interface {
	Parse(ctx context.Context, query string) *models.QueryIntent
}

// AnswerGenerator produces the final answer from retrieved context.
type AnswerGenerator interface {
	Answer(ctx context.Context, query, docContext string) (string, error)
}

// Embedder vectorizes the semantic query.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher runs filtered vector search over stored documents.
type Searcher interface {
	VectorSearch(ctx context.Context, embedding []float32, filters map[string]string, topK int) ([]models.ScoredProjection, error)
}

type Engine struct {
	intents  IntentParser
	answers  AnswerGenerator
	embedder Embedder
	searcher Searcher
	logger   logger.Logger
}

func NewEngine(intents IntentParser, answers AnswerGenerator, embedder Embedder, searcher Searcher, log logger.Logger) *Engine {
	return &Engine{
		intents:  intents,
		answers:  answers,
		embedder: embedder,
		searcher: searcher,
		logger:   log,
	}
}

// Chat answers one query. Degraded stages resolve to fixed user-facing
// messages instead of errors: a failed query embedding and an empty result
// set both return an answer with no sources and make no generation call.
func (e *Engine) Chat(ctx context.Context, query string) (*models.ChatAnswer, error) {
	intent := e.intents.Parse(ctx, query)
	e.logger.Debug("query intent resolved",
		logger.Int("filters", len(intent.Filters)),
		logger.String("semantic_query", intent.SemanticQuery))

	embedding, err := e.embedder.Embed(ctx, intent.SemanticQuery)
	if err != nil {
		e.logger.Warn("query embedding failed", logger.Error(err))
		return &models.ChatAnswer{Answer: embedFailedAnswer}, nil
	}

	results, err := e.searcher.VectorSearch(ctx, embedding, intent.Filters, topK)
	if err != nil {
		return nil, fmt.Errorf("document search failed: %w", err)
	}
	if len(results) == 0 {
		return &models.ChatAnswer{Answer: noDocumentsAnswer}, nil
	}

	answer, err := e.answers.Answer(ctx, query, buildContext(results))
	if err != nil {
		return nil, fmt.Errorf("answer generation failed: %w", err)
	}
	return &models.ChatAnswer{Answer: answer, Sources: results}, nil
}

// buildContext renders retrieved documents into the prompt context block.
func buildContext(results []models.ScoredProjection) string {
	var sb strings.Builder
	for _, r := range results {
		metadata, err := json.Marshal(r.Metadata)
		if err != nil {
			metadata = []byte("{}")
		}
		content := r.Content
		if runes := []rune(content); len(runes) > contextCharLimit {
			content = string(runes[:contextCharLimit])
		}
		fmt.Fprintf(&sb, "Document: %s\nMetadata: %s\nContent: %s\n---\n", r.Filename, metadata, content)
	}
	return sb.String()
}
