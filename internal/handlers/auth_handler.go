package handlers

import (
	"dashboard-service/internal/models"
	"dashboard-service/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

const sessionCookieMaxAge = 8 * 60 * 60 // seconds

type AuthHandler struct {
	authService *services.AuthService
	production  bool
}

func NewAuthHandler(authService *services.AuthService, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		production:  production,
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.Engine) {
	adminGr := router.Group("/api/admin")
	adminGr.POST("/login", h.Login)
	adminGr.POST("/logout", h.Logout)
	adminGr.GET("/me", h.Me)
}

// Login authenticates an operator and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password required"})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		// Generic body: never reveal whether username or password was wrong.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, session.ID, sessionCookieMaxAge, "/", "", h.production, true)
	c.JSON(http.StatusOK, gin.H{"username": session.Username})
}

// Logout destroys the current session.
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err == nil {
		if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
			respondError(c, err, h.production)
			return
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", h.production, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me reports the logged-in operator.
func (h *AuthHandler) Me(c *gin.Context) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	session, err := h.authService.Validate(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": session.Username})
}
