// Package middleware provides the gin middleware chain for the dashboard
// API: bearer auth, request logging and CORS.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/insightpulse/service-analytics/internal/auth"
	"github.com/insightpulse/service-analytics/internal/models"
)

// UserContextKey is where the authenticated user is stored on the gin
// context.
const UserContextKey = "user"

// RequireAuth validates the Authorization bearer token and stores the
// resolved user on the context. Requests without a valid token get 401.
func RequireAuth(manager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header"})
			return
		}

		user, err := manager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Could not validate credentials"})
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// AllowAll is the pass-through used when auth is disabled. Selected once at
// startup so handlers never branch on the auth mode.
func AllowAll() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// CurrentUser returns the authenticated user from the context, if any.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(UserContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
