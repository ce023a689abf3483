package llm

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/datareveal/docverse/internal/models"
)

const responseSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["metadata", "formatted_content", "formatted_tables", "entity"],
  "properties": {
    "metadata": {
      "type": "object",
      "additionalProperties": {"type": "string"}
    },
    "formatted_content": {"type": "string"},
    "formatted_tables": {"type": "array"},
    "entity": {"type": "string", "minLength": 1}
  }
}`

var responseSchema = jsonschema.MustCompileString("response.json", responseSchemaJSON)

// ValidateResponse checks a normalized response against the canonical shape.
// Callers treat failures as advisory; normalization already guarantees the
// shape, so a violation here points at a normalization bug.
func ValidateResponse(resp *models.CanonicalResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := responseSchema.Validate(doc); err != nil {
		return fmt.Errorf("response schema violation: %w", err)
	}
	return nil
}
