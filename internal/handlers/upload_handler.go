package handlers

import (
	"dashboard-service/internal/models"
	"dashboard-service/internal/services"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxUploadSize caps uploads at 50 MB.
const maxUploadSize = 50 * 1024 * 1024

type UploadHandler struct {
	uploadService *services.UploadService
	production    bool
}

func NewUploadHandler(uploadService *services.UploadService, production bool) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		production:    production,
	}
}

func (h *UploadHandler) RegisterRoutes(router *gin.Engine, m *Middleware) {
	uploadGr := router.Group("/api/admin/upload", m.RequireAuth)
	uploadGr.POST("", h.Upload)
	uploadGr.POST("/publish/:uploadId", h.Publish)
}

// Upload accepts a multipart file plus target sourceId and returns the
// preview payload.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File and sourceId are required"})
		return
	}
	sourceID := c.PostForm("sourceId")
	if sourceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File and sourceId are required"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 50MB upload limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, h.production)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	preview, err := h.uploadService.Preview(c.Request.Context(), sourceID, fileHeader.Filename, content)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusOK, preview)
}

// Publish confirms a previewed upload. The body's data field is optional:
// when absent the server-side staged payload is published.
func (h *UploadHandler) Publish(c *gin.Context) {
	uploadID, err := strconv.ParseInt(c.Param("uploadId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid upload id"})
		return
	}

	var req models.PublishRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publish payload"})
			return
		}
	}

	dest, err := h.uploadService.Publish(c.Request.Context(), uploadID, req.Data)
	if err != nil {
		respondError(c, err, h.production)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "dest": dest, "uploadId": uploadID})
}
