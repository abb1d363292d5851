package handlers

import (
	"dashboard-service/internal/filestore"
	"dashboard-service/internal/services"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEventMetrics struct{}

func (fakeEventMetrics) GetMetrics() map[string]any {
	return map[string]any{"messages_published": int64(3), "queue": "dashboard_publish_events"}
}

func newTestDataRouter(t *testing.T, metrics EventMetricsSource) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataService := services.NewDataService(filestore.NewFileStore(t.TempDir(), ""))
	handler := NewDataHandler(dataService, metrics, false)

	r := gin.New()
	handler.RegisterRoutes(r)
	return r
}

func TestHealthCheck(t *testing.T) {
	r := newTestDataRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "uptime")
	assert.NotContains(t, body, "events", "No event publisher means no events section")
}

func TestHealthCheck_WithEventMetrics(t *testing.T) {
	r := newTestDataRouter(t, fakeEventMetrics{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	events, ok := body["events"].(map[string]any)
	assert.True(t, ok, "Publisher counters should surface under events")
	assert.Equal(t, "dashboard_publish_events", events["queue"])
}

func TestGetData_NotFound(t *testing.T) {
	r := newTestDataRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/data/nope/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}
