package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/datareveal/docverse/api/handlers"
	"github.com/datareveal/docverse/api/middleware"
)

// SetupRoutes wires every endpoint onto the engine.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.Use(middleware.CORS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "DocVerse",
			"message": "Clinical trial document intake and retrieval API",
		})
	})
	r.GET("/health", h.Health.Check)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Check)
		v1.POST("/documents/upload", h.Document.UploadDocuments)
		v1.GET("/search", h.Search.SearchDocuments)
		v1.POST("/chat", h.Chat.ChatWithDocuments)
	}
}
