package handlers

import (
	"net/http"
	"strconv"

	"movie-circles/internal/models"
	"movie-circles/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WatchstreamsHandler handles watchstream CRUD and entry management
type WatchstreamsHandler struct {
	watchstreams *services.WatchstreamsService
}

// NewWatchstreamsHandler creates a new watchstreams handler
func NewWatchstreamsHandler(db *gorm.DB, movies *services.MoviesService) *WatchstreamsHandler {
	return &WatchstreamsHandler{
		watchstreams: services.NewWatchstreamsService(db, movies),
	}
}

type watchstreamRequest struct {
	Name string `json:"name" binding:"required"`
}

type watchstreamMovieRequest struct {
	MovieTMDBID        int64                      `json:"movieTmdbId" binding:"required"`
	WatchStatus        string                     `json:"watchStatus"`
	StreamingPlatforms []models.StreamingPlatform `json:"streamingPlatforms"`
}

type watchStatusRequest struct {
	WatchStatus        string                     `json:"watchStatus" binding:"required"`
	StreamingPlatforms []models.StreamingPlatform `json:"streamingPlatforms"`
}

// List handles GET /api/watchstreams
func (h *WatchstreamsHandler) List(c *gin.Context) {
	streams, err := h.watchstreams.List(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"watchstreams": streams})
}

// Create handles POST /api/watchstreams
func (h *WatchstreamsHandler) Create(c *gin.Context) {
	var req watchstreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	stream, err := h.watchstreams.Create(currentUserID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"watchstream": stream})
}

// Rename handles PUT /api/watchstreams/:id
func (h *WatchstreamsHandler) Rename(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req watchstreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	stream, err := h.watchstreams.Rename(id, currentUserID(c), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"watchstream": stream})
}

// Delete handles DELETE /api/watchstreams/:id
func (h *WatchstreamsHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.watchstreams.Delete(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListMovies handles GET /api/watchstreams/:id/movies?status=
func (h *WatchstreamsHandler) ListMovies(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	status := c.Query("status")
	if status != "" && !validWatchStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid watch status"})
		return
	}

	entries, err := h.watchstreams.ListMovies(id, currentUserID(c), status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movies": entries})
}

// AddMovie handles POST /api/watchstreams/:id/movies
func (h *WatchstreamsHandler) AddMovie(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req watchstreamMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "movieTmdbId is required"})
		return
	}
	if req.WatchStatus == "" {
		req.WatchStatus = models.WatchStatusBacklog
	}
	if !validWatchStatus(req.WatchStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid watch status"})
		return
	}

	entry, err := h.watchstreams.AddMovie(c.Request.Context(), id, currentUserID(c), req.MovieTMDBID, req.WatchStatus, req.StreamingPlatforms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"movie": entry})
}

// UpdateStatus handles PUT /api/watchstreams/:id/movies/:movieId
func (h *WatchstreamsHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	tmdbID, ok := parseMovieIDParam(c)
	if !ok {
		return
	}

	var req watchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "watchStatus is required"})
		return
	}
	if !validWatchStatus(req.WatchStatus) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid watch status"})
		return
	}

	err := h.watchstreams.UpdateStatus(id, currentUserID(c), tmdbID, req.WatchStatus, req.StreamingPlatforms)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// RemoveMovie handles DELETE /api/watchstreams/:id/movies/:movieId
func (h *WatchstreamsHandler) RemoveMovie(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	tmdbID, ok := parseMovieIDParam(c)
	if !ok {
		return
	}

	if err := h.watchstreams.RemoveMovie(id, currentUserID(c), tmdbID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// parseUUIDParam parses a uuid path parameter, writing a 400 on failure
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// parseMovieIDParam parses the :movieId path parameter (a TMDB id)
func parseMovieIDParam(c *gin.Context) (int64, bool) {
	tmdbID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id"})
		return 0, false
	}
	return tmdbID, true
}

// validWatchStatus reports whether s is a known watch status
func validWatchStatus(s string) bool {
	return s == models.WatchStatusBacklog || s == models.WatchStatusWatched
}
