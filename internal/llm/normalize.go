package llm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/datareveal/docverse/internal/models"
)

const dateOutputLayout = "02-01-2006"

// Day-first layouts are tried before month-first so ambiguous inputs resolve
// to the European reading.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"01/02/2006",
	"01-02-2006",
}

// Metadata keys whose values are canonicalized as dates. "Previous Visit
// Date" is a legacy spelling still seen in older extractions.
var dateFields = map[string]bool{
	"Visit Start Date":       true,
	"Visit End Date":         true,
	"Date of Letter":         true,
	"Date of Previous Visit": true,
	"Previous Visit Date":    true,
}

// DefaultResponse is the canonical fallback used when no JSON object can be
// recovered from model output.
func DefaultResponse() *models.CanonicalResponse {
	return &models.CanonicalResponse{
		Metadata:         map[string]string{},
		FormattedContent: "",
		FormattedTables:  []interface{}{},
		Entity:           models.EntityUnknown,
	}
}

// Normalize coerces a recovered JSON object into the canonical response. It
// is total over arbitrary objects and idempotent: every required metadata
// field ends up present, every value ends up a string, and dates end up in
// dd-mm-yyyy form.
func Normalize(raw map[string]interface{}) *models.CanonicalResponse {
	resp := &models.CanonicalResponse{
		Metadata:        map[string]string{},
		FormattedTables: []interface{}{},
	}

	if md, ok := raw["metadata"].(map[string]interface{}); ok {
		for key, value := range md {
			resp.Metadata[key] = coerceString(value)
		}
	}
	for _, field := range models.RequiredMetadataFields {
		if resp.Metadata[field] == "" {
			resp.Metadata[field] = "N/A"
		}
	}
	for field, value := range resp.Metadata {
		if dateFields[field] {
			resp.Metadata[field] = CanonicalizeDate(value)
		}
	}

	if v, ok := raw["formatted_content"]; ok {
		resp.FormattedContent = coerceString(v)
	}
	if tables, ok := raw["formatted_tables"].([]interface{}); ok {
		resp.FormattedTables = tables
	}
	if v, ok := raw["entity"]; ok {
		resp.Entity = strings.TrimSpace(coerceString(v))
	}
	if resp.Entity == "" {
		resp.Entity = models.EntityUnknown
	}

	return resp
}

// CanonicalizeDate rewrites a date into dd-mm-yyyy when it matches any known
// layout. Unparseable values pass through untouched, "N/A" included.
func CanonicalizeDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "N/A" {
		return value
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format(dateOutputLayout)
		}
	}
	return value
}

func coerceString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		// JSON numbers decode as float64; render integers without a point.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, coerceString(item))
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}
