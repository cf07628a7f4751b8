package handlers

import (
	"log"
	"net/http"

	"movie-circles/internal/auth"
	"movie-circles/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler handles the Google OAuth flow and session management
type AuthHandler struct {
	google   *auth.GoogleClient
	sessions *auth.SessionManager
	users    *services.UsersService
	circles  *services.CirclesService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, google *auth.GoogleClient, sessions *auth.SessionManager, circles *services.CirclesService) *AuthHandler {
	return &AuthHandler{
		google:   google,
		sessions: sessions,
		users:    services.NewUsersService(db),
		circles:  circles,
	}
}

// GoogleURL handles GET /api/auth/google/url
func (h *AuthHandler) GoogleURL(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"url": h.google.AuthURL()})
}

type callbackRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleCallback handles POST /api/auth/google/callback. It exchanges the
// authorization code, upserts the user, resolves any invitations issued to
// this email before the account existed, and sets the session cookie.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	var req callbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	profile, err := h.google.ExchangeCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.UpsertFromGoogle(profile)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.circles.ResolveExternalInvitations(user); err != nil {
		// The login itself succeeded; invitations will resolve next time.
		log.Printf("Failed to resolve external invitations for %s: %v", user.Email, err)
	}

	token, err := h.sessions.Issue(user.ID, user.Email, user.Name, user.Picture)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, token, auth.SessionMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout handles POST /api/auth/logout by expiring the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
