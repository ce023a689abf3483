package models

// EntityUnknown is the classification assigned when the language model
// could not place the document into the known set.
const EntityUnknown = "UNKNOWN"

// RequiredMetadataFields is the set of metadata keys every stored record
// carries; missing values are filled with the "N/A" sentinel during
// normalization.
var RequiredMetadataFields = []string{
	"Sponsor",
	"Protocol Number",
	"CRA Name",
	"Site Number",
	"Visit Type",
	"Visit Start Date",
	"Visit End Date",
	"Investigator Name",
	"Date of Letter",
	"Date of Previous Visit",
	"Number of Days",
}

// SearchableFields is the closed set of metadata fields accepted by the
// metadata-search endpoint and by query-intent filters.
var SearchableFields = []string{
	"Sponsor",
	"Protocol Number",
	"CRA Name",
	"Site Number",
	"Visit Type",
	"Investigator Name",
	"Date of Letter",
}

// IsSearchableField reports whether field belongs to SearchableFields.
func IsSearchableField(field string) bool {
	for _, f := range SearchableFields {
		if f == field {
			return true
		}
	}
	return false
}

// CanonicalResponse is the normalized four-key structured object produced
// from the language model output. It always has all four keys with the
// correct container types, regardless of output quality.
type CanonicalResponse struct {
	Metadata         map[string]string `json:"metadata"`
	FormattedContent string            `json:"formatted_content"`
	FormattedTables  []interface{}     `json:"formatted_tables"`
	Entity           string            `json:"entity"`
}

// Table is one extracted table: a title and ordered row objects.
type Table struct {
	Title string                   `json:"title"`
	Rows  []map[string]interface{} `json:"rows"`
}

// TablesFromRaw converts the raw formatted_tables row-groups into Table
// values. Objects carrying "Table Title"/"Content" keep their title; bare
// row objects and row arrays become untitled tables.
func TablesFromRaw(raw []interface{}) []Table {
	tables := make([]Table, 0, len(raw))
	var pending *Table

	appendRow := func(t *Table, v interface{}) {
		if row, ok := v.(map[string]interface{}); ok {
			t.Rows = append(t.Rows, row)
		}
	}

	for _, item := range raw {
		switch v := item.(type) {
		case map[string]interface{}:
			title, hasTitle := v["Table Title"].(string)
			content, hasContent := v["Content"].([]interface{})
			if hasTitle || hasContent {
				if pending != nil {
					tables = append(tables, *pending)
					pending = nil
				}
				t := Table{Title: title}
				for _, row := range content {
					appendRow(&t, row)
				}
				tables = append(tables, t)
				continue
			}
			// Bare row object: accumulate into one untitled table.
			if pending == nil {
				pending = &Table{}
			}
			appendRow(pending, v)
		case []interface{}:
			if pending != nil {
				tables = append(tables, *pending)
				pending = nil
			}
			t := Table{}
			for _, row := range v {
				appendRow(&t, row)
			}
			tables = append(tables, t)
		}
	}
	if pending != nil {
		tables = append(tables, *pending)
	}
	return tables
}

// DocumentRecord is the persisted, immutable representation of one
// processed document.
type DocumentRecord struct {
	ID               string            `json:"id"`
	Filename         string            `json:"filename"`
	Entity           string            `json:"entity"`
	FolderKey        string            `json:"folderKey"`
	Metadata         map[string]string `json:"metadata"`
	FormattedContent string            `json:"formattedContent"`
	Tables           []Table           `json:"tables"`
	ContentEmbedding []float32         `json:"contentEmbedding,omitempty"`
	UploadTimestamp  string            `json:"uploadTimestamp"`
	StoragePath      string            `json:"storagePath"`
}

// Projection is the reduced record view returned by searches: content and
// embedding are excluded.
type Projection struct {
	Filename  string            `json:"filename"`
	Entity    string            `json:"entity"`
	FolderKey string            `json:"folderKey"`
	Metadata  map[string]string `json:"metadata"`
}

// ScoredProjection is a Projection with a vector-similarity score and the
// content excerpt used for answer context.
type ScoredProjection struct {
	Projection
	Score   float32 `json:"score"`
	Content string  `json:"-"`
}

// QueryIntent is the parsed form of one conversational query: metadata
// filters plus the residual semantic query to embed.
type QueryIntent struct {
	Filters       map[string]string `json:"filters"`
	SemanticQuery string            `json:"semantic_query"`
}

// IntakeResult is the per-document outcome of an upload.
type IntakeResult struct {
	Status              string             `json:"status"`
	Filename            string             `json:"filename"`
	Entity              string             `json:"entity,omitempty"`
	ProcessingTimestamp string             `json:"processingTimestamp"`
	MetadataFieldCount  int                `json:"metadataFieldCount,omitempty"`
	StructuredResult    *CanonicalResponse `json:"structuredResult,omitempty"`
	Error               string             `json:"error,omitempty"`
}

// ChatAnswer is the response to one RAG query.
type ChatAnswer struct {
	Answer  string             `json:"answer"`
	Sources []ScoredProjection `json:"sources"`
}
