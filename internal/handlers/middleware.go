package handlers

import (
	"dashboard-service/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the admin session cookie.
const SessionCookieName = "session_id"

type Middleware struct {
	authService *services.AuthService
}

func NewMiddleware(authService *services.AuthService) *Middleware {
	return &Middleware{authService: authService}
}

// RequireAuth gates admin endpoints on a valid session cookie.
func (m *Middleware) RequireAuth(c *gin.Context) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	session, err := m.authService.Validate(c.Request.Context(), sessionID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	c.Set("session", session)
	c.Next()
}

// CORS allows the SPA dev server to call the API with credentials.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
