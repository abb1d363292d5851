package handlers

import (
	"dashboard-service/internal/services"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// EventMetricsSource reports publish-event delivery counters for the health
// endpoint.
type EventMetricsSource interface {
	GetMetrics() map[string]any
}

type DataHandler struct {
	dataService  *services.DataService
	eventMetrics EventMetricsSource
	production   bool
	startTime    time.Time
}

// NewDataHandler creates the public data handler. eventMetrics may be nil
// when no event publisher is configured.
func NewDataHandler(dataService *services.DataService, eventMetrics EventMetricsSource, production bool) *DataHandler {
	return &DataHandler{
		dataService:  dataService,
		eventMetrics: eventMetrics,
		production:   production,
		startTime:    time.Now(),
	}
}

func (h *DataHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/health", h.HealthCheck)

	dataGr := router.Group("/api/data")
	dataGr.GET("/:category/:dataset", h.GetData)
}

// HealthCheck is the public liveness endpoint.
func (h *DataHandler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    int(time.Since(h.startTime).Seconds()),
	}
	if h.eventMetrics != nil {
		body["events"] = h.eventMetrics.GetMetrics()
	}
	c.JSON(http.StatusOK, body)
}

// GetData serves a published document, falling back to bundled seed data.
func (h *DataHandler) GetData(c *gin.Context) {
	category := c.Param("category")
	dataset := c.Param("dataset")

	doc, err := h.dataService.Read(category, dataset)
	if err != nil {
		respondError(c, err, h.production)
		return
	}
	c.JSON(http.StatusOK, doc)
}
