package handlers

import (
	"net/http"

	"movie-circles/internal/models"
	"movie-circles/internal/services"

	"github.com/gin-gonic/gin"
)

// CirclesHandler handles circle membership, recommendations and comments
type CirclesHandler struct {
	circles *services.CirclesService
}

// NewCirclesHandler creates a new circles handler
func NewCirclesHandler(circles *services.CirclesService) *CirclesHandler {
	return &CirclesHandler{circles: circles}
}

type createCircleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type inviteRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type circleMovieRequest struct {
	MovieTMDBID        int64                      `json:"movieTmdbId" binding:"required"`
	Recommendation     string                     `json:"recommendation"`
	StreamingPlatforms []models.StreamingPlatform `json:"streamingPlatforms"`
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

// List handles GET /api/circles
func (h *CirclesHandler) List(c *gin.Context) {
	circles, err := h.circles.GetUserCircles(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, circles)
}

// Create handles POST /api/circles
func (h *CirclesHandler) Create(c *gin.Context) {
	var req createCircleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	circle, err := h.circles.Create(currentUserID(c), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"circle": circle})
}

// Get handles GET /api/circles/:id
func (h *CirclesHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	details, err := h.circles.Get(id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"circle": details})
}

// Delete handles DELETE /api/circles/:id
func (h *CirclesHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.circles.Delete(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// Invite handles POST /api/circles/:id/invite
func (h *CirclesHandler) Invite(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	if err := h.circles.Invite(id, currentUserID(c), req.Email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "invited"})
}

// Accept handles POST /api/circles/:id/accept
func (h *CirclesHandler) Accept(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.circles.Accept(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// Decline handles POST /api/circles/:id/decline
func (h *CirclesHandler) Decline(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.circles.Decline(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "declined"})
}

// RemoveMember handles DELETE /api/circles/:id/members/:userId. The owner
// removes members; a member may call it on themself to leave.
func (h *CirclesHandler) RemoveMember(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := parseUUIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.circles.RemoveMember(id, currentUserID(c), memberID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ListMovies handles GET /api/circles/:id/movies
func (h *CirclesHandler) ListMovies(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := h.circles.ListMovies(id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": entries})
}

// AddMovie handles POST /api/circles/:id/movies
func (h *CirclesHandler) AddMovie(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req circleMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movieTmdbId is required"})
		return
	}

	entry, err := h.circles.AddMovie(c.Request.Context(), id, currentUserID(c), req.MovieTMDBID, req.Recommendation, req.StreamingPlatforms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"movie": entry})
}

// RemoveMovie handles DELETE /api/circles/:id/movies/:movieId
func (h *CirclesHandler) RemoveMovie(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	tmdbID, ok := parseMovieIDParam(c)
	if !ok {
		return
	}

	if err := h.circles.RemoveMovie(id, currentUserID(c), tmdbID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// ListComments handles GET /api/circles/movies/:circleMovieId/comments
func (h *CirclesHandler) ListComments(c *gin.Context) {
	id, ok := parseUUIDParam(c, "circleMovieId")
	if !ok {
		return
	}

	comments, err := h.circles.ListComments(id, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// AddComment handles POST /api/circles/movies/:circleMovieId/comments
func (h *CirclesHandler) AddComment(c *gin.Context) {
	id, ok := parseUUIDParam(c, "circleMovieId")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	comment, err := h.circles.AddComment(id, currentUserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}
