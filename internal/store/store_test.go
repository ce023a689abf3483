package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datareveal/docverse/config"
	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

func newTestStore(t *testing.T) *DocumentStore {
	t.Helper()
	s, err := NewDocumentStore(&config.DatastoreConfig{
		DataDir:    t.TempDir(),
		Collection: "documents",
	}, logger.NewTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord(filename, sponsor string, embedding []float32) *models.DocumentRecord {
	return &models.DocumentRecord{
		Filename:  filename,
		Entity:    "MONITORING VISIT REPORT",
		FolderKey: "MVR_IMV_REPORT",
		Metadata: map[string]string{
			"Sponsor":     sponsor,
			"Site Number": "03409",
		},
		FormattedContent: "Monitoring visit summary for " + sponsor + ".",
		Tables:           []models.Table{},
		ContentEmbedding: embedding,
		UploadTimestamp:  "2024-03-05T12:00:00Z",
		StoragePath:      "documents/MVR_IMV_REPORT/" + filename,
	}
}

func TestInsertAssignsID(t *testing.T) {
	s := newTestStore(t)
	rec := testRecord("report.pdf", "Acme Pharma", []float32{1, 0, 0})

	require.NoError(t, s.Insert(context.Background(), rec))
	assert.NotEmpty(t, rec.ID)
}

func TestFindByMetadataExactVersusFuzzy(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, testRecord("a.pdf", "ACME Corp", nil)))
	require.NoError(t, s.Insert(ctx, testRecord("b.pdf", "Acme", nil)))

	exact, err := s.FindByMetadata(ctx, "Sponsor", "Acme", true)
	require.NoError(t, err)
	require.Len(t, exact, 1)
	assert.Equal(t, "b.pdf", exact[0].Filename)

	fuzzy, err := s.FindByMetadata(ctx, "Sponsor", "Acme", false)
	require.NoError(t, err)
	assert.Len(t, fuzzy, 2)
}

func TestFindByMetadataRejectsUnknownField(t *testing.T) {
	s := newTestStore(t)

	_, err := s.FindByMetadata(context.Background(), "Password", "x", false)
	assert.Error(t, err)
}

func TestFindByMetadataReturnsProjections(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, testRecord("a.pdf", "Acme Pharma", nil)))

	results, err := s.FindByMetadata(ctx, "Site Number", "03409", true)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "MONITORING VISIT REPORT", results[0].Entity)
	assert.Equal(t, "MVR_IMV_REPORT", results[0].FolderKey)
	assert.Equal(t, "Acme Pharma", results[0].Metadata["Sponsor"])
}

func TestVectorSearchRanksAndFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Insert(ctx, testRecord("near.pdf", "Acme Pharma", []float32{1, 0, 0})))
	require.NoError(t, s.Insert(ctx, testRecord("far.pdf", "Orbis Biotech", []float32{0, 1, 0})))

	results, err := s.VectorSearch(ctx, []float32{1, 0, 0}, nil, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "near.pdf", results[0].Filename)

	filtered, err := s.VectorSearch(ctx, []float32{1, 0, 0}, map[string]string{"Sponsor": "orbis"}, 5)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "far.pdf", filtered[0].Filename)
}

func TestVectorSearchOnEmptyIndex(t *testing.T) {
	s := newTestStore(t)

	results, err := s.VectorSearch(context.Background(), []float32{1, 0, 0}, nil, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}
