package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

type fakeCompleter struct {
	response string
	err      error
	calls    int
	lastUser string
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastUser = user
	return f.response, f.err
}

func TestExtractReturnsNormalizedResponse(t *testing.T) {
	completer := &fakeCompleter{response: `{
		"metadata": {"Sponsor": "Acme Pharma", "Visit Start Date": "2024-03-05"},
		"formatted_content": "Monitoring visit summary.",
		"formatted_tables": [],
		"entity": "MONITORING VISIT REPORT"
	}`}
	extractor := NewStructuredExtractor(completer, logger.NewTestLogger())

	resp := extractor.Extract(context.Background(), "raw ocr text")

	require.NotNil(t, resp)
	assert.Equal(t, "MONITORING VISIT REPORT", resp.Entity)
	assert.Equal(t, "Acme Pharma", resp.Metadata["Sponsor"])
	assert.Equal(t, "05-03-2024", resp.Metadata["Visit Start Date"])
	assert.Equal(t, "N/A", resp.Metadata["Protocol Number"])
}

func TestExtractDefaultsOnCompletionError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("rate limited")}
	extractor := NewStructuredExtractor(completer, logger.NewTestLogger())

	resp := extractor.Extract(context.Background(), "raw ocr text")

	assert.Equal(t, DefaultResponse(), resp)
}

func TestExtractDefaultsOnGarbageOutput(t *testing.T) {
	completer := &fakeCompleter{response: "I could not analyze this document."}
	extractor := NewStructuredExtractor(completer, logger.NewTestLogger())

	resp := extractor.Extract(context.Background(), "raw ocr text")

	assert.Equal(t, models.EntityUnknown, resp.Entity)
	assert.Empty(t, resp.Metadata)
}

func TestExtractTruncatesLongText(t *testing.T) {
	completer := &fakeCompleter{response: `{"entity": "MONITORING VISIT REPORT"}`}
	extractor := NewStructuredExtractor(completer, logger.NewTestLogger())

	long := strings.Repeat("a", maxPromptRunes) + "OVERFLOW"
	extractor.Extract(context.Background(), long)

	assert.NotContains(t, completer.lastUser, "OVERFLOW")
}

func TestIntentParserKeepsOnlySearchableFilters(t *testing.T) {
	completer := &fakeCompleter{response: `{
		"filters": {"Sponsor": "Acme", "Bogus Field": "x", "Site Number": ""},
		"semantic_query": "protocol deviations"
	}`}
	parser := NewIntentParser(completer, logger.NewTestLogger())

	intent := parser.Parse(context.Background(), "what deviations did Acme report?")

	assert.Equal(t, map[string]string{"Sponsor": "Acme"}, intent.Filters)
	assert.Equal(t, "protocol deviations", intent.SemanticQuery)
}

func TestIntentParserFallsBackToRawQuery(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("unavailable")}
	parser := NewIntentParser(completer, logger.NewTestLogger())

	intent := parser.Parse(context.Background(), "show me the closeout reports")

	assert.Empty(t, intent.Filters)
	assert.Equal(t, "show me the closeout reports", intent.SemanticQuery)
}
