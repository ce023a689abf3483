package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

type SearchHandler struct {
	searcher MetadataSearcher
	logger   logger.Logger
}

func NewSearchHandler(searcher MetadataSearcher, log logger.Logger) *SearchHandler {
	return &SearchHandler{searcher: searcher, logger: log}
}

// SearchDocuments looks up documents by one metadata field. Matching is
// fuzzy unless exact=true.
func (h *SearchHandler) SearchDocuments(c *gin.Context) {
	field := c.Query("field")
	value := c.Query("value")
	if field == "" || value == "" {
		h.handleError(c, http.StatusBadRequest, "Both field and value are required", nil)
		return
	}
	if !models.IsSearchableField(field) {
		h.handleError(c, http.StatusBadRequest, "Field is not searchable", nil)
		return
	}
	exact := c.Query("exact") == "true"

	results, err := h.searcher.FindByMetadata(c.Request.Context(), field, value, exact)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Search failed", err)
		return
	}
	if results == nil {
		results = []models.Projection{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

func (h *SearchHandler) handleError(c *gin.Context, status int, message string, err error) {
	h.logger.Error(message,
		logger.String("path", c.Request.URL.Path),
		logger.Error(err),
	)

	response := ErrorResponse{
		Message: message,
	}
	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(status, response)
}
