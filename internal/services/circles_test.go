package services

import (
	"context"
	"testing"
	"time"

	"movie-circles/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCirclesService_InviteAndAccept(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	notifications := NewNotificationsService(db)
	service := NewCirclesService(db, movies, notifications)

	owner := createTestUser(t, db, "owner@example.com")
	member := createTestUser(t, db, "member@example.com")

	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)

	require.NoError(t, service.Invite(circle.ID, owner.ID, "member@example.com"))

	// The invitee sees the pending invitation, an invite notification lands
	pending, err := service.GetPendingInvitations(member.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Film Club", pending[0].CircleName)

	list, err := notifications.List(member.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.NotificationCircleInvite, list[0].Type)

	// Re-inviting an existing pair is rejected regardless of status
	err = service.Invite(circle.ID, owner.ID, "member@example.com")
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, service.Accept(circle.ID, member.ID))

	details, err := service.Get(circle.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, details.Members, 2)
	assert.True(t, details.Members[0].IsOwner)
	assert.False(t, details.Members[1].IsOwner)
	assert.Equal(t, member.ID, details.Members[1].UserID)

	// Owner got the acceptance notification
	ownerFeed, err := notifications.List(owner.ID, 10)
	require.NoError(t, err)
	require.Len(t, ownerFeed, 1)
	assert.Equal(t, models.NotificationInviteAccepted, ownerFeed[0].Type)
}

func TestCirclesService_AcceptIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	notifications := NewNotificationsService(db)
	service := NewCirclesService(db, movies, notifications)

	owner := createTestUser(t, db, "owner@example.com")
	member := createTestUser(t, db, "member@example.com")
	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)
	require.NoError(t, service.Invite(circle.ID, owner.ID, member.Email))
	require.NoError(t, service.Accept(circle.ID, member.ID))

	var row models.CircleMember
	require.NoError(t, db.Where("circle_id = ? AND user_id = ?", circle.ID, member.ID).First(&row).Error)
	require.NotNil(t, row.JoinedAt)
	joined := *row.JoinedAt

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, service.Accept(circle.ID, member.ID), "second accept is a no-op, not an error")

	var after models.CircleMember
	require.NoError(t, db.Where("circle_id = ? AND user_id = ?", circle.ID, member.ID).First(&after).Error)
	assert.Equal(t, models.MemberStatusAccepted, after.Status)
	assert.WithinDuration(t, joined, *after.JoinedAt, time.Millisecond, "joined timestamp unchanged")

	var count int64
	db.Model(&models.CircleMember{}).Where("circle_id = ?", circle.ID).Count(&count)
	assert.Equal(t, int64(1), count, "no duplicate membership row")

	// Exactly one acceptance notification despite the second call
	feed, err := notifications.List(owner.ID, 10)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestCirclesService_DeclineDeletesPendingRow(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	service := NewCirclesService(db, movies, NewNotificationsService(db))

	owner := createTestUser(t, db, "owner@example.com")
	member := createTestUser(t, db, "member@example.com")
	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)
	require.NoError(t, service.Invite(circle.ID, owner.ID, member.Email))

	require.NoError(t, service.Decline(circle.ID, member.ID))
	require.NoError(t, service.Decline(circle.ID, member.ID), "declining twice is a no-op")

	var count int64
	db.Model(&models.CircleMember{}).Where("circle_id = ?", circle.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// A declined member can be invited again
	assert.NoError(t, service.Invite(circle.ID, owner.ID, member.Email))
}

func TestCirclesService_InviteBeforeSignup(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	service := NewCirclesService(db, movies, NewNotificationsService(db))

	owner := createTestUser(t, db, "owner@example.com")
	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)

	// No account for this email yet: the invite is parked externally
	require.NoError(t, service.Invite(circle.ID, owner.ID, "new@example.com"))

	var external int64
	db.Model(&models.ExternalInvitation{}).Where("email = ?", "new@example.com").Count(&external)
	require.Equal(t, int64(1), external)

	// Inviting the same email to the same circle again conflicts
	assert.ErrorIs(t, service.Invite(circle.ID, owner.ID, "new@example.com"), ErrConflict)

	// First sign-in resolves the invitation into a pending membership
	newcomer := createTestUser(t, db, "new@example.com")
	require.NoError(t, service.ResolveExternalInvitations(newcomer))

	var rows []models.CircleMember
	require.NoError(t, db.Where("user_id = ?", newcomer.ID).Find(&rows).Error)
	require.Len(t, rows, 1, "exactly one pending membership after login")
	assert.Equal(t, models.MemberStatusPending, rows[0].Status)
	assert.Equal(t, circle.ID, rows[0].CircleID)

	db.Model(&models.ExternalInvitation{}).Where("email = ?", "new@example.com").Count(&external)
	assert.Equal(t, int64(0), external, "resolved invitations are deleted")

	// Resolution is idempotent across repeat logins
	require.NoError(t, service.ResolveExternalInvitations(newcomer))
	require.NoError(t, db.Where("user_id = ?", newcomer.ID).Find(&rows).Error)
	assert.Len(t, rows, 1)
}

func TestCirclesService_DuplicateRecommendationRejected(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	service := NewCirclesService(db, movies, NewNotificationsService(db))

	owner := createTestUser(t, db, "owner@example.com")
	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)

	_, err = movies.Upsert(testMovie(27205, "Inception", 99))
	require.NoError(t, err)

	_, err = service.AddMovie(context.Background(), circle.ID, owner.ID, 27205, "great", nil)
	require.NoError(t, err)

	_, err = service.AddMovie(context.Background(), circle.ID, owner.ID, 27205, "still great", nil)
	assert.ErrorIs(t, err, ErrConflict)

	// Removing and re-adding succeeds
	require.NoError(t, service.RemoveMovie(circle.ID, owner.ID, 27205))
	_, err = service.AddMovie(context.Background(), circle.ID, owner.ID, 27205, "back again", nil)
	assert.NoError(t, err)
}

func TestCirclesService_RecommendationScenario(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	notifications := NewNotificationsService(db)
	service := NewCirclesService(db, movies, notifications)

	owner := createTestUser(t, db, "owner@example.com")
	member := createTestUser(t, db, "member@example.com")

	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)
	require.NoError(t, service.Invite(circle.ID, owner.ID, member.Email))
	require.NoError(t, service.Accept(circle.ID, member.ID))

	_, err = movies.Upsert(testMovie(27205, "Inception", 99))
	require.NoError(t, err)

	entry, err := service.AddMovie(context.Background(), circle.ID, member.ID, 27205, "great", nil)
	require.NoError(t, err)
	assert.Equal(t, "great", entry.Recommendation)
	require.NotNil(t, entry.Movie)
	assert.Equal(t, "Inception", entry.Movie.Title)

	// The owner's feed references the circle by name
	feed, err := notifications.List(owner.ID, 10)
	require.NoError(t, err)
	var recommended int
	for _, n := range feed {
		if n.Type == models.NotificationMovieRecommended {
			recommended++
			assert.Contains(t, n.Message, "Film Club")
		}
	}
	assert.Equal(t, 1, recommended)

	// The recommender is not notified about their own action
	memberFeed, err := notifications.List(member.ID, 10)
	require.NoError(t, err)
	for _, n := range memberFeed {
		assert.NotEqual(t, models.NotificationMovieRecommended, n.Type)
	}
}

func TestCirclesService_NonMembersAreRejected(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	service := NewCirclesService(db, movies, NewNotificationsService(db))

	owner := createTestUser(t, db, "owner@example.com")
	stranger := createTestUser(t, db, "stranger@example.com")
	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)

	_, err = service.Get(circle.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.ListMovies(circle.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = service.AddMovie(context.Background(), circle.ID, stranger.ID, 27205, "", nil)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCirclesService_RemoveMemberAuthorization(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	service := NewCirclesService(db, movies, NewNotificationsService(db))

	owner := createTestUser(t, db, "owner@example.com")
	member := createTestUser(t, db, "member@example.com")
	other := createTestUser(t, db, "other@example.com")

	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)
	require.NoError(t, service.Invite(circle.ID, owner.ID, member.Email))
	require.NoError(t, service.Accept(circle.ID, member.ID))

	// A third party may not remove someone else
	err = service.RemoveMember(circle.ID, other.ID, member.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// A member may leave on their own
	require.NoError(t, service.RemoveMember(circle.ID, member.ID, member.ID))

	var count int64
	db.Model(&models.CircleMember{}).Where("circle_id = ?", circle.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCirclesService_CommentsCascadeOnRemoveMovie(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	notifications := NewNotificationsService(db)
	service := NewCirclesService(db, movies, notifications)

	owner := createTestUser(t, db, "owner@example.com")
	member := createTestUser(t, db, "member@example.com")

	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)
	require.NoError(t, service.Invite(circle.ID, owner.ID, member.Email))
	require.NoError(t, service.Accept(circle.ID, member.ID))

	_, err = movies.Upsert(testMovie(27205, "Inception", 99))
	require.NoError(t, err)
	entry, err := service.AddMovie(context.Background(), circle.ID, member.ID, 27205, "great", nil)
	require.NoError(t, err)

	first, err := service.AddComment(entry.CircleMovie.ID, owner.ID, "watching this weekend")
	require.NoError(t, err)
	_, err = service.AddComment(entry.CircleMovie.ID, member.ID, "enjoy!")
	require.NoError(t, err)

	comments, err := service.ListComments(entry.CircleMovie.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID, "thread is chronological")

	// The recommender is notified about the owner's comment
	memberFeed, err := notifications.List(member.ID, 20)
	require.NoError(t, err)
	var commentNotes int
	for _, n := range memberFeed {
		if n.Type == models.NotificationCommentAdded {
			commentNotes++
		}
	}
	assert.Equal(t, 1, commentNotes, "author of a comment is not notified about it")

	require.NoError(t, service.RemoveMovie(circle.ID, member.ID, 27205))

	var count int64
	db.Model(&models.Comment{}).Where("circle_movie_id = ?", entry.CircleMovie.ID).Count(&count)
	assert.Equal(t, int64(0), count, "comments are deleted with the recommendation")
}

func TestCirclesService_GetUserCircles(t *testing.T) {
	db := setupTestDB(t)
	movies, _ := newCachedMoviesService(db)
	service := NewCirclesService(db, movies, NewNotificationsService(db))

	owner := createTestUser(t, db, "owner@example.com")
	member := createTestUser(t, db, "member@example.com")

	circle, err := service.Create(owner.ID, "Film Club", "")
	require.NoError(t, err)
	require.NoError(t, service.Invite(circle.ID, owner.ID, member.Email))

	// Pending membership shows up only under invitations
	memberView, err := service.GetUserCircles(member.ID)
	require.NoError(t, err)
	assert.Empty(t, memberView.Member)
	require.Len(t, memberView.PendingInvitations, 1)

	require.NoError(t, service.Accept(circle.ID, member.ID))

	memberView, err = service.GetUserCircles(member.ID)
	require.NoError(t, err)
	require.Len(t, memberView.Member, 1)
	assert.Empty(t, memberView.PendingInvitations)
	assert.Equal(t, 2, memberView.Member[0].MemberCount, "owner counts as an implicit member")

	ownerView, err := service.GetUserCircles(owner.ID)
	require.NoError(t, err)
	require.Len(t, ownerView.Owned, 1)
	assert.True(t, ownerView.Owned[0].IsOwner)
	assert.Equal(t, 2, ownerView.Owned[0].MemberCount)
}
