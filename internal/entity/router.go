// Package entity maps document-type classifications to storage folder keys.
package entity

// folders is the fixed entity-to-folder table. Two historical spellings of
// the site initiation visit report map to the same folder.
var folders = map[string]string{
	"PRE-STUDY SITE VISIT FOLLOW-UP LETTER":    "MVR_PSSV_FU_LETTER",
	"PRE-STUDY SITE VISIT CONFIRMATION LETTER": "MVR_PSSV_CONF_LETTER",
	"SITE INITIATION VISIT FOLLOW-UP LETTER":   "MVR_SIV_FU_LETTER",
	"SITE INITIATION VISIT CONFIRMATION LETTER": "MVR_SIV_CONF_LETTER",
	"CLOSE OUT VISIT CONFIRMATION LETTER":      "MVR_COV_CONF_LETTER",
	"CLOSE OUT VISIT FOLLOW-UP LETTER":         "MVR_COV_FU_LETTER",
	"MONITORING VISIT FOLLOW-UP LETTER":        "MVR_IMV_FU_LETTER",
	"MONITORING VISIT CONFIRMATION LETTER":     "MVR_IMV_CONF_LETTER",
	"CLOSE OUT VISIT REPORT":                   "MVR_COV_REPORT",
	"MONITORING VISIT REPORT":                  "MVR_IMV_REPORT",
	"PRE-STUDY SITE VISIT REPORT":              "MVR_PSSV_REPORT",
	"SITE INITIATION VISIT (SIV) REPORT":       "MVR_SIV_REPORT",
	"SITE INITIATION VISIT REPORT":             "MVR_SIV_REPORT",
}

// Resolve returns the folder key for a classified entity. The second
// return is false for any entity outside the known set; callers must treat
// that as a hard stop for storage routing.
func Resolve(entity string) (string, bool) {
	key, ok := folders[entity]
	return key, ok
}

// Known reports whether entity is one of the recognized document types.
func Known(entity string) bool {
	_, ok := folders[entity]
	return ok
}

// Labels returns the recognized entity labels in no particular order.
func Labels() []string {
	labels := make([]string, 0, len(folders))
	for k := range folders {
		labels = append(labels, k)
	}
	return labels
}
