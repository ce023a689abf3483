package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/datareveal/docverse/internal/models"
	"github.com/datareveal/docverse/pkg/logger"
)

type DocumentHandler struct {
	intaker Intaker
	tempDir string
	logger  logger.Logger
}

func NewDocumentHandler(intaker Intaker, tempDir string, log logger.Logger) *DocumentHandler {
	return &DocumentHandler{
		intaker: intaker,
		tempDir: tempDir,
		logger:  log,
	}
}

// UploadDocuments processes a multipart batch sequentially. A failing
// document reports its error in the results list without stopping the rest.
func (h *DocumentHandler) UploadDocuments(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid form data", err)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		h.handleError(c, http.StatusBadRequest, "No files provided", nil)
		return
	}

	if err := os.MkdirAll(h.tempDir, 0o755); err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to prepare upload directory", err)
		return
	}

	results := make([]*models.IntakeResult, 0, len(files))
	for _, file := range files {
		tempPath := filepath.Join(h.tempDir, uuid.New().String()+filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, tempPath); err != nil {
			h.logger.Error("failed to save uploaded file",
				logger.String("filename", file.Filename),
				logger.Error(err))
			results = append(results, &models.IntakeResult{
				Status:   "error",
				Filename: file.Filename,
				Error:    "failed to save uploaded file",
			})
			continue
		}

		results = append(results, h.intaker.Process(c.Request.Context(), tempPath, file.Filename))
		os.Remove(tempPath)
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

func (h *DocumentHandler) handleError(c *gin.Context, status int, message string, err error) {
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
