package handlers

import (
	"net/http"
	"strconv"

	"movie-circles/internal/services"
	"movie-circles/internal/worker"

	"github.com/gin-gonic/gin"
)

// MoviesHandler handles movie search and detail requests
type MoviesHandler struct {
	movies        *services.MoviesService
	workerService *worker.Service
}

// NewMoviesHandler creates a new movies handler
func NewMoviesHandler(movies *services.MoviesService, workerService *worker.Service) *MoviesHandler {
	return &MoviesHandler{
		movies:        movies,
		workerService: workerService,
	}
}

// Search handles GET /api/movies/search?q=. Cached matches are returned
// immediately; the query is handed to the refresh worker so the cache
// catches up without the request waiting on the provider.
func (h *MoviesHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	movies, err := h.movies.Search(query)
	if err != nil {
		respondError(c, err)
		return
	}

	h.workerService.EnqueueSearch(query)

	source := "cache"
	if len(movies) == 0 {
		source = "fetching"
	}
	c.JSON(http.StatusOK, gin.H{
		"movies": movies,
		"source": source,
	})
}

// GetByID handles GET /api/movies/:id, where :id is the TMDB id. A cache
// miss fetches from the provider synchronously.
func (h *MoviesHandler) GetByID(c *gin.Context) {
	tmdbID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id"})
		return
	}

	movie, err := h.movies.GetByTMDBID(c.Request.Context(), tmdbID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movie": movie})
}

// HealthCheck handles GET /health
func (h *MoviesHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "movie-circles",
	})
}

// WorkerStatus handles GET /api/worker/status
func (h *MoviesHandler) WorkerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"worker_status": h.workerService.GetStatus(),
	})
}
