package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveKnownEntities(t *testing.T) {
	cases := map[string]string{
		"MONITORING VISIT REPORT":              "MVR_IMV_REPORT",
		"MONITORING VISIT FOLLOW-UP LETTER":    "MVR_IMV_FU_LETTER",
		"MONITORING VISIT CONFIRMATION LETTER": "MVR_IMV_CONF_LETTER",
		"SITE INITIATION VISIT (SIV) REPORT":   "MVR_SIV_REPORT",
		"SITE INITIATION VISIT REPORT":         "MVR_SIV_REPORT",
		"CLOSE OUT VISIT REPORT":               "MVR_COV_REPORT",
		"PRE-STUDY SITE VISIT REPORT":          "MVR_PSSV_REPORT",
	}

	for label, want := range cases {
		folder, ok := Resolve(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, folder, label)
	}
}

func TestResolveRejectsUnknown(t *testing.T) {
	for _, label := range []string{"UNKNOWN", "", "INVOICE", "monitoring visit report"} {
		_, ok := Resolve(label)
		assert.False(t, ok, label)
		assert.False(t, Known(label), label)
	}
}

func TestLabelsCoversFullSet(t *testing.T) {
	labels := Labels()
	assert.Len(t, labels, 13)
	for _, label := range labels {
		assert.True(t, Known(label))
	}
}
