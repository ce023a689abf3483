package llm

import (
	"context"
	"strings"

	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

// IntentParser splits a chat question into exact metadata filters and a
// semantic query. It degrades gracefully: any failure yields no filters and
// the raw question as the semantic query.
type IntentParser struct {
	completer Completer
	logger    logger.Logger
}

func NewIntentParser(completer Completer, log logger.Logger) *IntentParser {
	return &IntentParser{completer: completer, logger: log}
}

func (p *IntentParser) Parse(ctx context.Context, query string) *models.QueryIntent {
	fallback := &models.QueryIntent{
		Filters:       map[string]string{},
		SemanticQuery: query,
	}

	prompt := strings.ReplaceAll(intentPromptTemplate, "{query}", query)
	out, err := p.completer.Complete(ctx, intentSystemPrompt, prompt)
	if err != nil {
		p.logger.Warn("intent analysis failed, using raw query", logger.Error(err))
		return fallback
	}

	obj, _, ok := RecoverJSON(out)
	if !ok {
		p.logger.Warn("intent analysis returned no JSON, using raw query")
		return fallback
	}

	intent := &models.QueryIntent{
		Filters:       map[string]string{},
		SemanticQuery: query,
	}
	if filters, ok := obj["filters"].(map[string]interface{}); ok {
		for field, value := range filters {
			s, ok := value.(string)
			if !ok || s == "" {
				continue
			}
			if !models.IsSearchableField(field) {
				p.logger.Warn("ignoring filter on unsupported field", logger.String("field", field))
				continue
			}
			intent.Filters[field] = s
		}
	}
	if sq, ok := obj["semantic_query"].(string); ok && strings.TrimSpace(sq) != "" {
		intent.SemanticQuery = sq
	}
	return intent
}
