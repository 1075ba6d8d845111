package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/repomirror-go/internal/app"
)

// RunHandler handles mirror-run HTTP requests
type RunHandler struct {
	mirrorMgr *app.MirrorManager
	logger    *zap.Logger
}

// NewRunHandler creates a new run handler
func NewRunHandler(mirrorMgr *app.MirrorManager, logger *zap.Logger) *RunHandler {
	return &RunHandler{
		mirrorMgr: mirrorMgr,
		logger:    logger,
	}
}

// StartRun handles POST /api/v1/runs
func (h *RunHandler) StartRun(c *gin.Context) {
	run, err := h.mirrorMgr.StartRun(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to start mirror run", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, run)
}

// GetRun handles GET /api/v1/runs/:id
func (h *RunHandler) GetRun(c *gin.Context) {
	id := c.Param("id")

	run, err := h.mirrorMgr.GetRun(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// ListRuns handles GET /api/v1/runs
func (h *RunHandler) ListRuns(c *gin.Context) {
	filters := make(map[string]interface{})

	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}

	runs, err := h.mirrorMgr.ListRuns(filters)
	if err != nil {
		h.logger.Error("Failed to list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, runs)
}

// GetRunFiles handles GET /api/v1/runs/:id/files
func (h *RunHandler) GetRunFiles(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.mirrorMgr.GetRun(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
		return
	}

	digests, err := h.mirrorMgr.GetRunDigests(id)
	if err != nil {
		h.logger.Error("Failed to list run files", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, digests)
}

// GetStats handles GET /api/v1/runs/stats
func (h *RunHandler) GetStats(c *gin.Context) {
	stats, err := h.mirrorMgr.GetStats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
