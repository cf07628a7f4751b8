// Package handlers exposes the REST API over the services layer.
package handlers

import (
	"errors"
	"log"
	"net/http"

	"movie-circles/internal/auth"
	"movie-circles/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service-layer sentinel errors onto HTTP statuses.
// Anything unrecognized becomes a 500 with a generic body; the real error
// only goes to the server log.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed"})
	case errors.Is(err, services.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Movie provider unavailable"})
	case errors.Is(err, auth.ErrAuthentication):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication failed"})
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
