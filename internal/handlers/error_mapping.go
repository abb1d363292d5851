package handlers

import (
	"dashboard-service/internal/models"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MapErrorToHTTPStatus translates service-layer errors into HTTP statuses.
// The handler layer is the single place that decides status codes; parsers
// and validation never leak past the pipeline boundary.
func MapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrBadRequest),
		errors.Is(err, models.ErrUnsupportedFormat),
		errors.Is(err, models.ErrParse):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error body. Unexpected failures return a generic
// message in production so internals never leak to the client.
func respondError(c *gin.Context, err error, production bool) {
	status := MapErrorToHTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError && production {
		message = "Internal server error"
	}
	c.JSON(status, gin.H{"error": message})
}
