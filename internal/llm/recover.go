package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Recovery strategies, in the order they are attempted.
const (
	tierDirect = "direct"
	tierFenced = "fenced"
	tierBraces = "braces"
	tierRepair = "repair"
)

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")
	braceSpanRe   = regexp.MustCompile(`(?s)\{.*\}`)

	pythonicReplacer = strings.NewReplacer(
		"'", `"`,
		"True", "true",
		"False", "false",
		"None", "null",
	)
)

// RecoverJSON attempts to pull a JSON object out of model output. It tries,
// in order: parsing the text as-is, the contents of a fenced code block, the
// widest brace-delimited span, and finally a textual repair of that span.
// The returned tier names the strategy that succeeded.
func RecoverJSON(text string) (map[string]interface{}, string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, "", false
	}

	if obj, ok := decodeObject(text); ok {
		return obj, tierDirect, true
	}

	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		if obj, ok := decodeObject(m[1]); ok {
			return obj, tierFenced, true
		}
	}

	if span := braceSpanRe.FindString(text); span != "" {
		if obj, ok := decodeObject(span); ok {
			return obj, tierBraces, true
		}
		if obj, ok := decodeObject(pythonicReplacer.Replace(span)); ok {
			return obj, tierRepair, true
		}
	}

	return nil, "", false
}

// decodeObject accepts only a top-level JSON object.
func decodeObject(text string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, false
	}
	return obj, true
}
