package llm

import (
	"context"
	"strings"

	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

// maxPromptRunes bounds how much OCR text is sent to the model. Metadata
// lives in the opening pages, so a prefix is enough.
const maxPromptRunes = 8000

// StructuredExtractor turns OCR text into the canonical structured response.
// It never fails outward: completion errors and unrecoverable output both
// collapse to the default response.
type StructuredExtractor struct {
	completer Completer
	logger    logger.Logger
}

func NewStructuredExtractor(completer Completer, log logger.Logger) *StructuredExtractor {
	return &StructuredExtractor{completer: completer, logger: log}
}

func (e *StructuredExtractor) Extract(ctx context.Context, rawText string) *models.CanonicalResponse {
	text := truncateRunes(rawText, maxPromptRunes)
	prompt := strings.ReplaceAll(extractionPromptTemplate, "{ocr_text}", text)

	out, err := e.completer.Complete(ctx, extractionSystemPrompt, prompt)
	if err != nil {
		e.logger.Error("structured extraction completion failed", logger.Error(err))
		return DefaultResponse()
	}

	obj, tier, ok := RecoverJSON(out)
	if !ok {
		e.logger.Error("no JSON object recoverable from model output",
			logger.Int("output_length", len(out)))
		return DefaultResponse()
	}
	if tier != tierDirect {
		e.logger.Warn("recovered JSON via fallback strategy", logger.String("strategy", tier))
	}

	resp := Normalize(obj)
	if err := ValidateResponse(resp); err != nil {
		e.logger.Warn("normalized response failed schema check", logger.Error(err))
	}
	return resp
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
