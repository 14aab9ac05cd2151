package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/insightpulse/service-analytics/internal/auth"
	"github.com/insightpulse/service-analytics/internal/middleware"
)

// AuthHandler handles login and current-user endpoints.
type AuthHandler struct {
	users  *auth.UserStore
	jwt    *auth.JWTManager
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users *auth.UserStore, jwt *auth.JWTManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt, logger: logger}
}

// Login exchanges form credentials for a bearer token.
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(username, password)
	if err != nil {
		h.logger.Warn("Login failed", zap.String("username", username))
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		h.logger.Error("Failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to issue token"})
		return
	}

	h.logger.Info("User logged in", zap.String("username", user.Username))
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

// Me returns the user resolved from the bearer token.
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
		return
	}
	c.JSON(http.StatusOK, user)
}
