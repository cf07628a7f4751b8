package services

import (
	"encoding/json"
	"fmt"

	"movie-circles/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// defaultNotificationLimit bounds how many notifications a single list call returns
const defaultNotificationLimit = 50

// NotificationsService is the durable per-user event log. Rows are created
// only as side effects of circle and watchstream mutations.
type NotificationsService struct {
	db *gorm.DB
}

// NewNotificationsService creates a new notifications service
func NewNotificationsService(db *gorm.DB) *NotificationsService {
	return &NotificationsService{db: db}
}

// Create appends a notification for a user
func (ns *NotificationsService) Create(userID uuid.UUID, ntype, title, message string, metadata map[string]interface{}, link string) error {
	notification := models.Notification{
		UserID:  userID,
		Type:    ntype,
		Title:   title,
		Message: message,
		Link:    link,
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return fmt.Errorf("failed to encode notification metadata: %w", err)
		}
		notification.Metadata = datatypes.JSON(raw)
	}

	if err := ns.db.Create(&notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// List returns a user's notifications, newest first
func (ns *NotificationsService) List(userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit < 1 || limit > 100 {
		limit = defaultNotificationLimit
	}

	var notifications []models.Notification
	err := ns.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// UnreadCount returns the number of unread notifications for a user
func (ns *NotificationsService) UnreadCount(userID uuid.UUID) (int64, error) {
	var count int64
	err := ns.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flips the read flag on a single notification. The owner scoping
// lives in the WHERE clause so marking someone else's notification is a
// silent no-op rather than an existence leak.
func (ns *NotificationsService) MarkRead(id, userID uuid.UUID) error {
	err := ns.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead flips the read flag on every unread notification for a user
func (ns *NotificationsService) MarkAllRead(userID uuid.UUID) error {
	err := ns.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Delete removes a notification, scoped to its owner like MarkRead
func (ns *NotificationsService) Delete(id, userID uuid.UUID) error {
	err := ns.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Notification{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
