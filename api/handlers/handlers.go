package handlers

import (
	"context"

	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

// Intaker processes one uploaded document end to end.
type Intaker interface {
	Process(ctx context.Context, srcPath, filename string) *models.IntakeResult
}

// MetadataSearcher serves exact and fuzzy metadata lookups.
type MetadataSearcher interface {
	FindByMetadata(ctx context.Context, field, value string, exact bool) ([]models.Projection, error)
}

// Chatter answers conversational queries over stored documents.
type Chatter interface {
	Chat(ctx context.Context, query string) (*models.ChatAnswer, error)
}

// ErrorResponse is the uniform error body for every endpoint.
type ErrorResponse struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message"`
}

type Handlers struct {
	Document *DocumentHandler
	Search   *SearchHandler
	Chat     *ChatHandler
	Health   *HealthHandler
}

func NewHandlers(intaker Intaker, searcher MetadataSearcher, chatter Chatter, tempDir string, log logger.Logger) *Handlers {
	return &Handlers{
		Document: NewDocumentHandler(intaker, tempDir, log),
		Search:   NewSearchHandler(searcher, log),
		Chat:     NewChatHandler(chatter, log),
		Health:   NewHealthHandler(),
	}
}
