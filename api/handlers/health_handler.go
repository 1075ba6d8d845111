package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/repomirror-go/internal/app"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	mirrorMgr *app.MirrorManager
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(mirrorMgr *app.MirrorManager) *HealthHandler {
	return &HealthHandler{
		mirrorMgr: mirrorMgr,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, err := h.mirrorMgr.GetStats(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "repository unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
