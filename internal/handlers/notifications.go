package handlers

import (
	"net/http"
	"strconv"

	"movie-circles/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// NotificationsHandler exposes the per-user notification feed
type NotificationsHandler struct {
	notifications *services.NotificationsService
}

// NewNotificationsHandler creates a new notifications handler
func NewNotificationsHandler(db *gorm.DB) *NotificationsHandler {
	return &NotificationsHandler{notifications: services.NewNotificationsService(db)}
}

// List handles GET /api/notifications
func (h *NotificationsHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, err := h.notifications.List(userID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	unread, err := h.notifications.UnreadCount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

// MarkRead handles POST /api/notifications/:id/read
func (h *NotificationsHandler) MarkRead(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.MarkRead(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// MarkAllRead handles POST /api/notifications/read-all
func (h *NotificationsHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// Delete handles DELETE /api/notifications/:id
func (h *NotificationsHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.notifications.Delete(id, currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
