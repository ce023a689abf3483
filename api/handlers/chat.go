package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/datareveal/docverse/pkg/logger"
)

type ChatHandler struct {
	chatter Chatter
	logger  logger.Logger
}

type ChatRequest struct {
	Query string `json:"query"`
}

func NewChatHandler(chatter Chatter, log logger.Logger) *ChatHandler {
	return &ChatHandler{chatter: chatter, logger: log}
}

// ChatWithDocuments answers one question grounded in stored documents.
func (h *ChatHandler) ChatWithDocuments(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		h.handleError(c, http.StatusBadRequest, "Query is required", nil)
		return
	}

	answer, err := h.chatter.Chat(c.Request.Context(), req.Query)
	if err != nil {
		h.handleError(c, http.StatusInternalServerError, "Failed to answer query", err)
		return
	}

	c.JSON(http.StatusOK, answer)
}

func (h *ChatHandler) handleError(c *gin.Context, status int, message string, err error) {
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
