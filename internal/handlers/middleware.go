package handlers

import (
	"net/http"

	"movie-circles/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by RequireSession
const (
	ctxUserID = "user_id"
	ctxEmail  = "email"
)

// RequireSession decodes the session cookie and rejects the request with 401
// when it is absent or malformed. On success the user id and email are set
// in the gin context.
func RequireSession(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		claims, err := sessions.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session"})
			return
		}

		c.Set(ctxUserID, claims.UserID().String())
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

// currentUserID returns the authenticated user's id from the gin context
func currentUserID(c *gin.Context) uuid.UUID {
	id, _ := uuid.Parse(c.GetString(ctxUserID))
	return id
}
