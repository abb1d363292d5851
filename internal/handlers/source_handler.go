package handlers

import (
	"dashboard-service/internal/models"
	"dashboard-service/internal/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SourceHandler struct {
	sourceService *services.SourceService
	production    bool
}

func NewSourceHandler(sourceService *services.SourceService, production bool) *SourceHandler {
	return &SourceHandler{
		sourceService: sourceService,
		production:    production,
	}
}

func (h *SourceHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	sourcesGr := router.Group("/api/admin/sources", m.RequireAuth)
	sourcesGr.GET("", h.List)
	sourcesGr.PUT("/update", h.Update)
	sourcesGr.GET("/history", h.History)
	sourcesGr.GET("/health", h.Health)
}

// List returns every source with its config and blob metadata.
func (h *SourceHandler) List(c *gin.Context) {
	sources, err := h.sourceService.List()
	if err != nil {
		respondError(c, err, h.production)
		return
	}
	c.JSON(http.StatusOK, sources)
}

// Update applies a partial source-config change.
func (h *SourceHandler) Update(c *gin.Context) {
	var req models.UpdateSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.sourceService.Update(req); err != nil {
		respondError(c, err, h.production)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// History returns the latest upload-history rows.
func (h *SourceHandler) History(c *gin.Context) {
	history, err := h.sourceService.History()
	if err != nil {
		respondError(c, err, h.production)
		return
	}
	c.JSON(http.StatusOK, history)
}

// Health returns the per-source freshness classification.
func (h *SourceHandler) Health(c *gin.Context) {
	health, err := h.sourceService.Health(time.Now())
	if err != nil {
		respondError(c, err, h.production)
		return
	}
	c.JSON(http.StatusOK, health)
}
