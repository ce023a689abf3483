package llm

import (
	"context"
	"strings"

	"github.com/datareveal/docverse/pkg/logger"
)

// AnswerGenerator produces the final grounded answer for a chat query from
// retrieved document context.
type AnswerGenerator struct {
	completer Completer
	logger    logger.Logger
}

func NewAnswerGenerator(completer Completer, log logger.Logger) *AnswerGenerator {
	return &AnswerGenerator{completer: completer, logger: log}
}

func (g *AnswerGenerator) Answer(ctx context.Context, query, docContext string) (string, error) {
	prompt := strings.ReplaceAll(answerPromptTemplate, "{context}", docContext)
	prompt = strings.ReplaceAll(prompt, "{query}", query)

	out, err := g.completer.Complete(ctx, answerSystemPrompt, prompt)
	if err != nil {
		g.logger.Error("answer generation failed", logger.Error(err))
		return "", err
	}
	return strings.TrimSpace(out), nil
}
