package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

type fakeText struct {
	text string
	err  error
}

func (f *fakeText) Extract(ctx context.Context, path string) (string, error) {
	return f.text, f.err
}

type fakeStructured struct {
	resp *models.CanonicalResponse
}

func (f *fakeStructured) Extract(ctx context.Context, rawText string) *models.CanonicalResponse {
	return f.resp
}

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	return f.vector, f.err
}

type fakeArchiver struct {
	path  string
	err   error
	calls int
}

func (f *fakeArchiver) Archive(ctx context.Context, srcPath, folderKey, filename string) (string, error) {
	f.calls++
	return f.path, f.err
}

type fakeRecorder struct {
	records []*models.DocumentRecord
	err     error
}

func (f *fakeRecorder) Insert(ctx context.Context, rec *models.DocumentRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func validResponse() *models.CanonicalResponse {
	return &models.CanonicalResponse{
		Metadata: map[string]string{
			"Sponsor":     "Acme Pharma",
			"Site Number": "03409",
		},
		FormattedContent: "Monitoring visit summary.",
		FormattedTables:  []interface{}{},
		Entity:           "MONITORING VISIT REPORT",
	}
}

func TestProcessHappyPath(t *testing.T) {
	embedder := &fakeEmbedder{vector: []float32{0.1, 0.2}}
	archiver := &fakeArchiver{path: "documents/MVR_IMV_REPORT/report_20240305_120000.pdf"}
	recorder := &fakeRecorder{}
	p := New(&fakeText{text: "raw ocr text"}, &fakeStructured{resp: validResponse()},
		embedder, archiver, recorder, logger.NewTestLogger())

	result := p.Process(context.Background(), "/tmp/upload.pdf", "report.pdf")

	require.Equal(t, "success", result.Status)
	assert.Equal(t, "MONITORING VISIT REPORT", result.Entity)
	assert.Equal(t, 2, result.MetadataFieldCount)
	require.NotNil(t, result.StructuredResult)

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, "report.pdf", rec.Filename)
	assert.Equal(t, "MVR_IMV_REPORT", rec.FolderKey)
	assert.Equal(t, archiver.path, rec.StoragePath)
	assert.Equal(t, []float32{0.1, 0.2}, rec.ContentEmbedding)
}

func TestProcessFailsWithoutText(t *testing.T) {
	recorder := &fakeRecorder{}
	archiver := &fakeArchiver{}
	p := New(&fakeText{text: "   \n  "}, &fakeStructured{resp: validResponse()},
		&fakeEmbedder{}, archiver, recorder, logger.NewTestLogger())

	result := p.Process(context.Background(), "/tmp/upload.pdf", "blank.pdf")

	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Error, "no text extracted")
	assert.Empty(t, recorder.records)
	assert.Equal(t, 0, archiver.calls)
}

func TestProcessFailsOnUnknownEntity(t *testing.T) {
	resp := validResponse()
	resp.Entity = models.EntityUnknown
	recorder := &fakeRecorder{}
	archiver := &fakeArchiver{}
	p := New(&fakeText{text: "raw text"}, &fakeStructured{resp: resp},
		&fakeEmbedder{}, archiver, recorder, logger.NewTestLogger())

	result := p.Process(context.Background(), "/tmp/upload.pdf", "mystery.pdf")

	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Error, "not recognized")
	assert.Empty(t, recorder.records)
	assert.Equal(t, 0, archiver.calls)
}

func TestProcessStoresWithoutVectorWhenEmbeddingFails(t *testing.T) {
	recorder := &fakeRecorder{}
	p := New(&fakeText{text: "raw text"}, &fakeStructured{resp: validResponse()},
		&fakeEmbedder{err: errors.New("quota exceeded")},
		&fakeArchiver{path: "documents/MVR_IMV_REPORT/x.pdf"}, recorder, logger.NewTestLogger())

	result := p.Process(context.Background(), "/tmp/upload.pdf", "report.pdf")

	require.Equal(t, "success", result.Status)
	require.Len(t, recorder.records, 1)
	assert.Empty(t, recorder.records[0].ContentEmbedding)
}

func TestProcessFailsWhenArchivalFails(t *testing.T) {
	recorder := &fakeRecorder{}
	p := New(&fakeText{text: "raw text"}, &fakeStructured{resp: validResponse()},
		&fakeEmbedder{vector: []float32{0.5}},
		&fakeArchiver{err: errors.New("bucket unreachable")}, recorder, logger.NewTestLogger())

	result := p.Process(context.Background(), "/tmp/upload.pdf", "report.pdf")

	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Error, "archival failed")
	assert.Empty(t, recorder.records)
}

func TestProcessFailsWhenPersistenceFails(t *testing.T) {
	p := New(&fakeText{text: "raw text"}, &fakeStructured{resp: validResponse()},
		&fakeEmbedder{vector: []float32{0.5}},
		&fakeArchiver{path: "documents/MVR_IMV_REPORT/x.pdf"},
		&fakeRecorder{err: errors.New("disk full")}, logger.NewTestLogger())

	result := p.Process(context.Background(), "/tmp/upload.pdf", "report.pdf")

	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Error, "persist")
}
