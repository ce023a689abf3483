// Package store persists processed documents and serves both metadata and
// semantic queries. SQLite is the source of truth for records; a chromem
// collection carries the content vectors alongside it.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
	_ "modernc.org/sqlite"

	"github.com/datareveal/docverse/config"
	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

// candidatePoolSize is how many nearest neighbours are pulled from the
// vector index before metadata filters are applied.
const candidatePoolSize = 100

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id                TEXT PRIMARY KEY,
	filename          TEXT NOT NULL,
	entity            TEXT NOT NULL,
	folder_key        TEXT NOT NULL,
	metadata          TEXT NOT NULL,
	formatted_content TEXT NOT NULL,
	tables            TEXT NOT NULL,
	upload_timestamp  TEXT NOT NULL,
	storage_path      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_entity ON documents(entity);
`

// Keys the vector index reserves for record identity; everything else in a
// chromem document's metadata is the extracted document metadata itself.
const (
	vecKeyFilename  = "filename"
	vecKeyEntity    = "entity"
	vecKeyFolderKey = "folder_key"
)

type DocumentStore struct {
	db      *sql.DB
	vectors *chromem.Collection
	logger  logger.Logger
}

func NewDocumentStore(cfg *config.DatastoreConfig, log logger.Logger) (*DocumentStore, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := filepath.Join(cfg.DataDir, "documents.db") +
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	vdb, err := chromem.NewPersistentDB(filepath.Join(cfg.DataDir, "vectors"), false)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open vector index: %w", err)
	}
	// Embeddings are always supplied by the caller.
	collection, err := vdb.GetOrCreateCollection(cfg.Collection, nil, noEmbedding)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open vector collection: %w", err)
	}

	return &DocumentStore{db: db, vectors: collection, logger: log}, nil
}

func noEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("embeddings must be precomputed")
}

// Insert stores a processed document. The record gets an ID when it has
// none. A failure to index the vector is logged but does not fail the
// insert; the relational row remains the source of truth.
func (s *DocumentStore) Insert(ctx context.Context, rec *models.DocumentRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	metadata, err := json.Marshal(rec.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	tables, err := json.Marshal(rec.Tables)
	if err != nil {
		return fmt.Errorf("failed to encode tables: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents
		 (id, filename, entity, folder_key, metadata, formatted_content, tables, upload_timestamp, storage_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Filename, rec.Entity, rec.FolderKey,
		string(metadata), rec.FormattedContent, string(tables),
		rec.UploadTimestamp, rec.StoragePath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	if len(rec.ContentEmbedding) == 0 {
		s.logger.Warn("document stored without content embedding",
			logger.String("filename", rec.Filename))
		return nil
	}

	vecMeta := map[string]string{
		vecKeyFilename:  rec.Filename,
		vecKeyEntity:    rec.Entity,
		vecKeyFolderKey: rec.FolderKey,
	}
	for field, value := range rec.Metadata {
		vecMeta[field] = value
	}
	err = s.vectors.AddDocument(ctx, chromem.Document{
		ID:        rec.ID,
		Metadata:  vecMeta,
		Embedding: rec.ContentEmbedding,
		Content:   rec.FormattedContent,
	})
	if err != nil {
		s.logger.Warn("failed to index document vector",
			logger.String("filename", rec.Filename), logger.Error(err))
	}
	return nil
}

// FindByMetadata returns projections of documents whose metadata field
// matches the value. Exact matching compares the full value; fuzzy matching
// is a case-insensitive substring test. The field must be searchable.
func (s *DocumentStore) FindByMetadata(ctx context.Context, field, value string, exact bool) ([]models.Projection, error) {
	if !models.IsSearchableField(field) {
		return nil, fmt.Errorf("field %q is not searchable", field)
	}

	// The field name is whitelisted above, so it is safe to embed.
	path := `'$."` + field + `"'`
	var query string
	if exact {
		query = `SELECT filename, entity, folder_key, metadata FROM documents
		         WHERE json_extract(metadata, ` + path + `) = ?`
	} else {
		query = `SELECT filename, entity, folder_key, metadata FROM documents
		         WHERE instr(lower(json_extract(metadata, ` + path + `)), lower(?)) > 0`
	}

	rows, err := s.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("metadata query failed: %w", err)
	}
	defer rows.Close()

	var results []models.Projection
	for rows.Next() {
		var p models.Projection
		var metadata string
		if err := rows.Scan(&p.Filename, &p.Entity, &p.FolderKey, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(metadata), &p.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata: %w", err)
		}
		results = append(results, p)
	}
	return results, rows.Err()
}

// VectorSearch returns up to topK documents nearest to the embedding, after
// dropping candidates that fail any of the metadata filters. Filters match
// case-insensitively on substrings. An unavailable or failing index degrades
// to an empty result rather than an error.
func (s *DocumentStore) VectorSearch(ctx context.Context, embedding []float32, filters map[string]string, topK int) ([]models.ScoredProjection, error) {
	count := s.vectors.Count()
	if count == 0 {
		return nil, nil
	}
	n := candidatePoolSize
	if n > count {
		n = count
	}

	candidates, err := s.vectors.QueryEmbedding(ctx, embedding, n, nil, nil)
	if err != nil {
		s.logger.Warn("vector query failed", logger.Error(err))
		return nil, nil
	}

	var results []models.ScoredProjection
	for _, c := range candidates {
		if !matchesFilters(c.Metadata, filters) {
			continue
		}
		p := models.Projection{
			Filename:  c.Metadata[vecKeyFilename],
			Entity:    c.Metadata[vecKeyEntity],
			FolderKey: c.Metadata[vecKeyFolderKey],
			Metadata:  map[string]string{},
		}
		for key, val := range c.Metadata {
			if key == vecKeyFilename || key == vecKeyEntity || key == vecKeyFolderKey {
				continue
			}
			p.Metadata[key] = val
		}
		results = append(results, models.ScoredProjection{
			Projection: p,
			Score:      c.Similarity,
			Content:    c.Content,
		})
		if len(results) == topK {
			break
		}
	}
	return results, nil
}

func matchesFilters(metadata map[string]string, filters map[string]string) bool {
	for field, want := range filters {
		have, ok := metadata[field]
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
			return false
		}
	}
	return true
}

func (s *DocumentStore) Close() error {
	return s.db.Close()
}
