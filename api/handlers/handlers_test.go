package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

type fakeIntaker struct {
	calls int
}

func (f *fakeIntaker) Process(ctx context.Context, srcPath, filename string) *models.IntakeResult {
	f.calls++
	return &models.IntakeResult{Status: "success", Filename: filename}
}

type fakeSearcher struct {
	results []models.Projection
	err     error
}

func (f *fakeSearcher) FindByMetadata(ctx context.Context, field, value string, exact bool) ([]models.Projection, error) {
	return f.results, f.err
}

type fakeChatter struct {
	answer *models.ChatAnswer
	err    error
}

func (f *fakeChatter) Chat(ctx context.Context, query string) (*models.ChatAnswer, error) {
	return f.answer, f.err
}

func newTestRouter(t *testing.T, intaker Intaker, searcher MetadataSearcher, chatter Chatter) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewHandlers(intaker, searcher, chatter, t.TempDir(), logger.NewTestLogger())

	r := gin.New()
	r.POST("/api/v1/documents/upload", h.Document.UploadDocuments)
	r.GET("/api/v1/search", h.Search.SearchDocuments)
	r.POST("/api/v1/chat", h.Chat.ChatWithDocuments)
	r.GET("/health", h.Health.Check)
	return r
}

func multipartBody(t *testing.T, filenames ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, name := range filenames {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte("file content"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadProcessesEachFile(t *testing.T) {
	intaker := &fakeIntaker{}
	r := newTestRouter(t, intaker, &fakeSearcher{}, &fakeChatter{})

	body, contentType := multipartBody(t, "a.pdf", "b.png")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, intaker.calls)

	var resp struct {
		Count   int                   `json:"count"`
		Results []models.IntakeResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "a.pdf", resp.Results[0].Filename)
}

func TestUploadRejectsEmptyBatch(t *testing.T) {
	r := newTestRouter(t, &fakeIntaker{}, &fakeSearcher{}, &fakeChatter{})

	body, contentType := multipartBody(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRejectsUnknownField(t *testing.T) {
	r := newTestRouter(t, &fakeIntaker{}, &fakeSearcher{}, &fakeChatter{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?field=Password&value=x", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRequiresFieldAndValue(t *testing.T) {
	r := newTestRouter(t, &fakeIntaker{}, &fakeSearcher{}, &fakeChatter{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?field=Sponsor", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchReturnsResults(t *testing.T) {
	searcher := &fakeSearcher{results: []models.Projection{{
		Filename: "report.pdf",
		Entity:   "MONITORING VISIT REPORT",
	}}}
	r := newTestRouter(t, &fakeIntaker{}, searcher, &fakeChatter{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?field=Sponsor&value=Acme&exact=true", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Count   int                 `json:"count"`
		Results []models.Projection `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "report.pdf", resp.Results[0].Filename)
}

func TestChatRequiresQuery(t *testing.T) {
	r := newTestRouter(t, &fakeIntaker{}, &fakeSearcher{}, &fakeChatter{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(`{"query": "  "}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChatReturnsAnswer(t *testing.T) {
	chatter := &fakeChatter{answer: &models.ChatAnswer{Answer: "Site 03409."}}
	r := newTestRouter(t, &fakeIntaker{}, &fakeSearcher{}, chatter)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(`{"query": "where?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var answer models.ChatAnswer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answer))
	assert.Equal(t, "Site 03409.", answer.Answer)
}

func TestChatReportsEngineFailure(t *testing.T) {
	chatter := &fakeChatter{err: errors.New("model unavailable")}
	r := newTestRouter(t, &fakeIntaker{}, &fakeSearcher{}, chatter)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(`{"query": "where?"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, &fakeIntaker{}, &fakeSearcher{}, &fakeChatter{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
