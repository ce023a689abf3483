// Package pipeline drives one document from upload to storage: text
// extraction, structured extraction, entity routing, embedding, archival
// and persistence.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/datareveal/docverse/internal/archive"
	"github.com/datareveal/docverse/internal/entity"
	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

// Intake stages, in processing order. Errored absorbs from any stage.
const (
	StageReceived            = "received"
	StageTextExtracted       = "text_extracted"
	StageStructuredExtracted = "structured_extracted"
	StageRouted              = "routed"
	StageStored              = "stored"
	StageDone                = "done"
	StageErrored             = "errored"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// TextExtractor recovers raw text from a document file.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// StructuredExtractor turns raw text into the canonical response. It is
// total; degraded output carries the UNKNOWN entity.
type StructuredExtractor interface {
	Extract(ctx context.Context, rawText string) *models.CanonicalResponse
}

// Embedder produces the content vector. Failures here degrade the record,
// they do not fail the intake.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Recorder persists the finished record.
type Recorder interface {
	Insert(ctx context.Context, rec *models.DocumentRecord) error
}

type Pipeline struct {
	text       TextExtractor
	structured StructuredExtractor
	embedder   Embedder
	archiver   archive.Archiver
	recorder   Recorder
	logger     logger.Logger
}

func New(text TextExtractor, structured StructuredExtractor, embedder Embedder, archiver archive.Archiver, recorder Recorder, log logger.Logger) *Pipeline {
	return &Pipeline{
		text:       text,
		structured: structured,
		embedder:   embedder,
		archiver:   archiver,
		recorder:   recorder,
		logger:     log,
	}
}

// Process runs one document through every stage. The returned result always
// carries a status and never a partial record: a document either completes
// archival and persistence or reports the stage that stopped it.
func (p *Pipeline) Process(ctx context.Context, srcPath, filename string) *models.IntakeResult {
	started := time.Now()
	log := p.logger.With(logger.String("filename", filename))
	log.Info("document received", logger.String("stage", StageReceived))

	rawText, err := p.text.Extract(ctx, srcPath)
	if err != nil {
		return p.fail(log, filename, StageReceived, fmt.Errorf("text extraction failed: %w", err))
	}
	if strings.TrimSpace(rawText) == "" {
		return p.fail(log, filename, StageReceived, fmt.Errorf("no text extracted"))
	}
	log.Info("text extracted",
		logger.String("stage", StageTextExtracted),
		logger.Int("characters", len(rawText)))

	resp := p.structured.Extract(ctx, rawText)
	log.Info("structured response ready",
		logger.String("stage", StageStructuredExtracted),
		logger.String("entity", resp.Entity))

	folderKey, ok := entity.Resolve(resp.Entity)
	if !ok {
		return p.fail(log, filename, StageStructuredExtracted,
			fmt.Errorf("document entity %q is not recognized", resp.Entity))
	}
	log.Info("document routed",
		logger.String("stage", StageRouted),
		logger.String("folder", folderKey))

	var embedding []float32
	if strings.TrimSpace(resp.FormattedContent) == "" {
		log.Warn("no formatted content to embed")
	} else if embedding, err = p.embedder.Embed(ctx, resp.FormattedContent); err != nil {
		log.Warn("content embedding failed, storing without vector", logger.Error(err))
		embedding = nil
	}

	storagePath, err := p.archiver.Archive(ctx, srcPath, folderKey, filename)
	if err != nil {
		return p.fail(log, filename, StageRouted, fmt.Errorf("archival failed: %w", err))
	}

	record := &models.DocumentRecord{
		Filename:         filename,
		Entity:           resp.Entity,
		FolderKey:        folderKey,
		Metadata:         resp.Metadata,
		FormattedContent: resp.FormattedContent,
		Tables:           models.TablesFromRaw(resp.FormattedTables),
		ContentEmbedding: embedding,
		UploadTimestamp:  started.UTC().Format(time.RFC3339),
		StoragePath:      storagePath,
	}
	if err := p.recorder.Insert(ctx, record); err != nil {
		return p.fail(log, filename, StageStored, fmt.Errorf("failed to persist record: %w", err))
	}

	log.Info("document processed",
		logger.String("stage", StageDone),
		logger.Duration("elapsed", time.Since(started)))
	return &models.IntakeResult{
		Status:              statusSuccess,
		Filename:            filename,
		Entity:              resp.Entity,
		ProcessingTimestamp: started.UTC().Format(time.RFC3339),
		MetadataFieldCount:  len(resp.Metadata),
		StructuredResult:    resp,
	}
}

func (p *Pipeline) fail(log logger.Logger, filename, stage string, err error) *models.IntakeResult {
	log.Error("document intake failed",
		logger.String("stage", StageErrored),
		logger.String("last_stage", stage),
		logger.Error(err))
	return &models.IntakeResult{
		Status:              statusError,
		Filename:            filename,
		ProcessingTimestamp: time.Now().UTC().Format(time.RFC3339),
		Error:               err.Error(),
	}
}
