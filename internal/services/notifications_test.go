package services

import (
	"testing"

	"movie-circles/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationsService_ListAndUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	service := NewNotificationsService(db)

	alice := createTestUser(t, db, "alice@example.com")

	for i := 0; i < 3; i++ {
		err := service.Create(alice.ID, models.NotificationCircleInvite,
			"Circle invitation", "you were invited",
			map[string]interface{}{"circle_name": "Film Club"}, "/circles")
		require.NoError(t, err)
	}

	list, err := service.List(alice.ID, 10)
	require.NoError(t, err)
	assert.Len(t, list, 3)
	assert.JSONEq(t, `{"circle_name":"Film Club"}`, string(list[0].Metadata))

	unread, err := service.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	require.NoError(t, service.MarkRead(list[0].ID, alice.ID))
	unread, err = service.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	require.NoError(t, service.MarkAllRead(alice.ID))
	unread, err = service.UnreadCount(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
}

func TestNotificationsService_MarkReadIsOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	service := NewNotificationsService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	require.NoError(t, service.Create(alice.ID, models.NotificationCommentAdded,
		"New comment", "someone commented", nil, ""))

	list, err := service.List(alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Another user marking it read neither errors nor changes the flag
	require.NoError(t, service.MarkRead(list[0].ID, bob.ID))

	var n models.Notification
	require.NoError(t, db.First(&n, "id = ?", list[0].ID).Error)
	assert.False(t, n.Read)

	// The owner can
	require.NoError(t, service.MarkRead(list[0].ID, alice.ID))
	require.NoError(t, db.First(&n, "id = ?", list[0].ID).Error)
	assert.True(t, n.Read)
}

func TestNotificationsService_DeleteIsOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	service := NewNotificationsService(db)

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")

	require.NoError(t, service.Create(alice.ID, models.NotificationCommentAdded,
		"New comment", "someone commented", nil, ""))
	list, err := service.List(alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, service.Delete(list[0].ID, bob.ID))
	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, service.Delete(list[0].ID, alice.ID))
	db.Model(&models.Notification{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestNotificationsService_ListIsNewestFirstAndCapped(t *testing.T) {
	db := setupTestDB(t)
	service := NewNotificationsService(db)

	alice := createTestUser(t, db, "alice@example.com")
	for i := 0; i < 5; i++ {
		require.NoError(t, service.Create(alice.ID, models.NotificationCircleInvite,
			"Circle invitation", "msg", nil, ""))
	}

	list, err := service.List(alice.ID, 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.After(list[i-1].CreatedAt), "feed is newest first")
	}
}
