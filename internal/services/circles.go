package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"movie-circles/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// commentListLimit defensively caps a single comment thread read
const commentListLimit = 500

// CirclesService manages circles: the membership lifecycle, movie
// recommendations and their comment threads. The owner is an implicit member
// everywhere and never has a circle_members row.
type CirclesService struct {
	db            *gorm.DB
	movies        *MoviesService
	notifications *NotificationsService
}

// NewCirclesService creates a new circles service
func NewCirclesService(db *gorm.DB, movies *MoviesService, notifications *NotificationsService) *CirclesService {
	return &CirclesService{
		db:            db,
		movies:        movies,
		notifications: notifications,
	}
}

// CircleSummary is a circle with its effective member count (explicit
// accepted members plus the implicit owner).
type CircleSummary struct {
	models.Circle
	MemberCount int  `json:"member_count"`
	IsOwner     bool `json:"is_owner"`
}

// MemberView is one roster entry of a circle
type MemberView struct {
	UserID   uuid.UUID  `json:"user_id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Picture  string     `json:"picture,omitempty"`
	IsOwner  bool       `json:"is_owner"`
	JoinedAt *time.Time `json:"joined_at,omitempty"`
}

// CircleDetails is a circle with its full roster
type CircleDetails struct {
	models.Circle
	IsOwner bool         `json:"is_owner"`
	Members []MemberView `json:"members"`
}

// PendingInvitation is a pending membership from the invitee's point of view
type PendingInvitation struct {
	CircleID    uuid.UUID `json:"circle_id"`
	CircleName  string    `json:"circle_name"`
	Description string    `json:"description,omitempty"`
	InvitedBy   string    `json:"invited_by"`
	InvitedAt   time.Time `json:"invited_at"`
}

// UserCircles groups everything the circles index returns for one user
type UserCircles struct {
	Owned              []CircleSummary     `json:"owned"`
	Member             []CircleSummary     `json:"member"`
	PendingInvitations []PendingInvitation `json:"pending_invitations"`
}

// RecommendationEntry is a circle recommendation enriched with its cached
// movie and the recommender's name.
type RecommendationEntry struct {
	models.CircleMovie
	Movie             *models.Movie `json:"movie,omitempty"`
	RecommendedByName string        `json:"recommended_by_name,omitempty"`
}

// Create makes a new circle owned by the caller
func (cs *CirclesService) Create(ownerID uuid.UUID, name, description string) (*models.Circle, error) {
	circle := models.Circle{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := cs.db.Create(&circle).Error; err != nil {
		return nil, fmt.Errorf("failed to create circle: %w", err)
	}
	return &circle, nil
}

// GetUserCircles returns circles the user owns, circles they are an accepted
// member of, and their pending invitations. Pending memberships appear only
// in the invitations list.
func (cs *CirclesService) GetUserCircles(userID uuid.UUID) (*UserCircles, error) {
	out := UserCircles{
		Owned:              []CircleSummary{},
		Member:             []CircleSummary{},
		PendingInvitations: []PendingInvitation{},
	}

	var owned []models.Circle
	if err := cs.db.Where("owner_id = ?", userID).Order("created_at DESC").Find(&owned).Error; err != nil {
		return nil, fmt.Errorf("failed to list owned circles: %w", err)
	}
	for _, circle := range owned {
		count, err := cs.memberCount(circle.ID)
		if err != nil {
			return nil, err
		}
		out.Owned = append(out.Owned, CircleSummary{Circle: circle, MemberCount: count, IsOwner: true})
	}

	var memberships []models.CircleMember
	err := cs.db.
		Preload("Circle").
		Where("user_id = ? AND status = ?", userID, models.MemberStatusAccepted).
		Find(&memberships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	for _, m := range memberships {
		count, err := cs.memberCount(m.CircleID)
		if err != nil {
			return nil, err
		}
		out.Member = append(out.Member, CircleSummary{Circle: m.Circle, MemberCount: count, IsOwner: false})
	}

	pending, err := cs.GetPendingInvitations(userID)
	if err != nil {
		return nil, err
	}
	out.PendingInvitations = pending

	return &out, nil
}

// GetPendingInvitations returns the user's pending circle invitations
func (cs *CirclesService) GetPendingInvitations(userID uuid.UUID) ([]PendingInvitation, error) {
	var rows []models.CircleMember
	err := cs.db.
		Preload("Circle").
		Preload("InvitedBy").
		Where("user_id = ? AND status = ?", userID, models.MemberStatusPending).
		Order("invited_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending invitations: %w", err)
	}

	invitations := make([]PendingInvitation, 0, len(rows))
	for _, row := range rows {
		invitations = append(invitations, PendingInvitation{
			CircleID:    row.CircleID,
			CircleName:  row.Circle.Name,
			Description: row.Circle.Description,
			InvitedBy:   row.InvitedBy.Name,
			InvitedAt:   row.InvitedAt,
		})
	}
	return invitations, nil
}

// Get returns a circle with its roster. Only the owner and accepted members
// may see it.
func (cs *CirclesService) Get(circleID, userID uuid.UUID) (*CircleDetails, error) {
	circle, err := cs.getCircle(circleID)
	if err != nil {
		return nil, err
	}
	if err := cs.requireMember(circle, userID); err != nil {
		return nil, err
	}

	var owner models.User
	if err := cs.db.First(&owner, "id = ?", circle.OwnerID).Error; err != nil {
		return nil, fmt.Errorf("failed to load circle owner: %w", err)
	}

	members := []MemberView{{
		UserID:  owner.ID,
		Name:    owner.Name,
		Email:   owner.Email,
		Picture: owner.Picture,
		IsOwner: true,
	}}

	var rows []models.CircleMember
	err = cs.db.
		Preload("User").
		Where("circle_id = ? AND status = ?", circleID, models.MemberStatusAccepted).
		Order("joined_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load circle members: %w", err)
	}
	for _, row := range rows {
		members = append(members, MemberView{
			UserID:   row.UserID,
			Name:     row.User.Name,
			Email:    row.User.Email,
			Picture:  row.User.Picture,
			IsOwner:  false,
			JoinedAt: row.JoinedAt,
		})
	}

	return &CircleDetails{
		Circle:  *circle,
		IsOwner: circle.OwnerID == userID,
		Members: members,
	}, nil
}

// Delete removes a circle and everything under it. Owner only.
func (cs *CirclesService) Delete(circleID, userID uuid.UUID) error {
	circle, err := cs.getCircle(circleID)
	if err != nil {
		return err
	}
	if circle.OwnerID != userID {
		return ErrForbidden
	}

	return cs.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("circle_movie_id IN (?)",
			tx.Model(&models.CircleMovie{}).Select("id").Where("circle_id = ?", circleID),
		).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete circle comments: %w", err)
		}
		if err := tx.Where("circle_id = ?", circleID).Delete(&models.CircleMovie{}).Error; err != nil {
			return fmt.Errorf("failed to delete circle movies: %w", err)
		}
		if err := tx.Where("circle_id = ?", circleID).Delete(&models.CircleMember{}).Error; err != nil {
			return fmt.Errorf("failed to delete circle members: %w", err)
		}
		if err := tx.Where("circle_id = ?", circleID).Delete(&models.ExternalInvitation{}).Error; err != nil {
			return fmt.Errorf("failed to delete external invitations: %w", err)
		}
		if err := tx.Delete(circle).Error; err != nil {
			return fmt.Errorf("failed to delete circle: %w", err)
		}
		return nil
	})
}

// Invite invites an email address into a circle. A known email gets a
// pending membership row and a notification; an unknown one gets an external
// invitation resolved at that email's first sign-in.
func (cs *CirclesService) Invite(circleID, inviterID uuid.UUID, email string) error {
	circle, err := cs.getCircle(circleID)
	if err != nil {
		return err
	}
	if err := cs.requireMember(circle, inviterID); err != nil {
		return err
	}

	email = strings.ToLower(email)

	var invitee models.User
	err = cs.db.Where("email = ?", email).First(&invitee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		invitation := models.ExternalInvitation{
			CircleID:    circleID,
			Email:       email,
			InvitedByID: inviterID,
		}
		if err := cs.db.Create(&invitation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrConflict
			}
			return fmt.Errorf("failed to create external invitation: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to resolve invitee: %w", err)
	}

	if invitee.ID == circle.OwnerID {
		return ErrConflict
	}

	member := models.CircleMember{
		CircleID:    circleID,
		UserID:      invitee.ID,
		Status:      models.MemberStatusPending,
		InvitedByID: inviterID,
	}
	if err := cs.db.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}

	cs.notifyInvite(&invitee, circle, inviterID)
	return nil
}

// ResolveExternalInvitations converts every external invitation addressed to
// an email into a pending membership for the now-known user. Runs once per
// sign-in and is idempotent: pairs that already exist are skipped.
func (cs *CirclesService) ResolveExternalInvitations(user *models.User) error {
	var invitations []models.ExternalInvitation
	err := cs.db.
		Preload("Circle").
		Where("email = ?", strings.ToLower(user.Email)).
		Find(&invitations).Error
	if err != nil {
		return fmt.Errorf("failed to load external invitations: %w", err)
	}

	for _, invitation := range invitations {
		member := models.CircleMember{
			CircleID:    invitation.CircleID,
			UserID:      user.ID,
			Status:      models.MemberStatusPending,
			InvitedByID: invitation.InvitedByID,
		}
		err := cs.db.Create(&member).Error
		if err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to resolve external invitation: %w", err)
		}
		if err == nil {
			cs.notifyInvite(user, &invitation.Circle, invitation.InvitedByID)
		}

		if err := cs.db.Delete(&invitation).Error; err != nil {
			return fmt.Errorf("failed to delete resolved invitation: %w", err)
		}
	}
	return nil
}

// Accept transitions a pending membership to accepted, stamping the joined
// time. Accepting twice is a no-op.
func (cs *CirclesService) Accept(circleID, userID uuid.UUID) error {
	now := time.Now()
	result := cs.db.Model(&models.CircleMember{}).
		Where("circle_id = ? AND user_id = ? AND status = ?", circleID, userID, models.MemberStatusPending).
		Updates(map[string]interface{}{
			"status":    models.MemberStatusAccepted,
			"joined_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to accept invitation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// No pending row: already accepted, declined, or never invited.
		return nil
	}

	circle, err := cs.getCircle(circleID)
	if err != nil {
		return nil
	}
	var member models.User
	if err := cs.db.First(&member, "id = ?", userID).Error; err == nil {
		if err := cs.notifications.Create(circle.OwnerID, models.NotificationInviteAccepted,
			"Invitation accepted",
			fmt.Sprintf("%s joined %s", displayName(&member), circle.Name),
			map[string]interface{}{
				"circle_id":   circle.ID.String(),
				"circle_name": circle.Name,
				"actor_name":  displayName(&member),
			},
			"/circles/"+circle.ID.String()); err != nil {
			log.Printf("Failed to notify circle owner: %v", err)
		}
	}
	return nil
}

// Decline deletes a pending membership. Declining twice is a no-op.
func (cs *CirclesService) Decline(circleID, userID uuid.UUID) error {
	err := cs.db.
		Where("circle_id = ? AND user_id = ? AND status = ?", circleID, userID, models.MemberStatusPending).
		Delete(&models.CircleMember{}).Error
	if err != nil {
		return fmt.Errorf("failed to decline invitation: %w", err)
	}
	return nil
}

// RemoveMember deletes a membership row regardless of status. The owner may
// remove anyone; a member may only remove themself (leave).
func (cs *CirclesService) RemoveMember(circleID, actorID, memberID uuid.UUID) error {
	circle, err := cs.getCircle(circleID)
	if err != nil {
		return err
	}
	if actorID != circle.OwnerID && actorID != memberID {
		return ErrForbidden
	}
	if memberID == circle.OwnerID {
		return ErrForbidden
	}

	result := cs.db.
		Where("circle_id = ? AND user_id = ?", circleID, memberID).
		Delete(&models.CircleMember{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMovie recommends a movie into a circle, caching it first if needed.
// One recommendation per (circle, movie) pair; all other effective members
// are notified.
func (cs *CirclesService) AddMovie(ctx context.Context, circleID, userID uuid.UUID, tmdbID int64, recommendation string, platforms []models.StreamingPlatform) (*RecommendationEntry, error) {
	circle, err := cs.getCircle(circleID)
	if err != nil {
		return nil, err
	}
	if err := cs.requireMember(circle, userID); err != nil {
		return nil, err
	}

	movie, err := cs.movies.EnsureCached(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	entry := models.CircleMovie{
		CircleID:        circleID,
		MovieTMDBID:     tmdbID,
		RecommendedByID: userID,
		Recommendation:  recommendation,
	}
	if entry.StreamingPlatforms, err = encodePlatforms(platforms); err != nil {
		return nil, err
	}

	if err := cs.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to add circle movie: %w", err)
	}

	var recommender models.User
	if err := cs.db.First(&recommender, "id = ?", userID).Error; err == nil {
		cs.notifyMembers(circle, userID, models.NotificationMovieRecommended,
			"New recommendation",
			fmt.Sprintf("%s recommended %s in %s", displayName(&recommender), movie.Title, circle.Name),
			map[string]interface{}{
				"circle_id":   circle.ID.String(),
				"circle_name": circle.Name,
				"movie_title": movie.Title,
				"actor_name":  displayName(&recommender),
			})
	}

	return &RecommendationEntry{
		CircleMovie:       entry,
		Movie:             movie,
		RecommendedByName: displayName(&recommender),
	}, nil
}

// RemoveMovie hard-deletes a recommendation and its comment thread in one
// transaction. Only the recommender or the circle owner may remove it.
func (cs *CirclesService) RemoveMovie(circleID, userID uuid.UUID, tmdbID int64) error {
	circle, err := cs.getCircle(circleID)
	if err != nil {
		return err
	}

	var entry models.CircleMovie
	err = cs.db.Where("circle_id = ? AND movie_tmdb_id = ?", circleID, tmdbID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up circle movie: %w", err)
	}

	if userID != circle.OwnerID && userID != entry.RecommendedByID {
		return ErrForbidden
	}

	return cs.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("circle_movie_id = ?", entry.ID).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return fmt.Errorf("failed to delete circle movie: %w", err)
		}
		return nil
	})
}

// ListMovies returns a circle's recommendations, newest first
func (cs *CirclesService) ListMovies(circleID, userID uuid.UUID) ([]RecommendationEntry, error) {
	circle, err := cs.getCircle(circleID)
	if err != nil {
		return nil, err
	}
	if err := cs.requireMember(circle, userID); err != nil {
		return nil, err
	}

	var rows []models.CircleMovie
	err = cs.db.
		Preload("RecommendedBy").
		Where("circle_id = ?", circleID).
		Order("added_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list circle movies: %w", err)
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.MovieTMDBID)
	}
	byID := make(map[int64]*models.Movie, len(ids))
	if len(ids) > 0 {
		var movies []models.Movie
		if err := cs.db.Where("tmdb_id IN ?", ids).Find(&movies).Error; err != nil {
			return nil, fmt.Errorf("failed to load cached movies: %w", err)
		}
		for i := range movies {
			byID[movies[i].TMDBID] = &movies[i]
		}
	}

	entries := make([]RecommendationEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, RecommendationEntry{
			CircleMovie:       row,
			Movie:             byID[row.MovieTMDBID],
			RecommendedByName: displayName(&row.RecommendedBy),
		})
	}
	return entries, nil
}

// AddComment appends a comment to a recommendation's thread. The recommender
// and everyone who commented before are notified, except the author.
func (cs *CirclesService) AddComment(circleMovieID, userID uuid.UUID, content string) (*models.Comment, error) {
	entry, circle, err := cs.getCircleMovie(circleMovieID)
	if err != nil {
		return nil, err
	}
	if err := cs.requireMember(circle, userID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		CircleMovieID: circleMovieID,
		UserID:        userID,
		Content:       content,
	}
	if err := cs.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	cs.notifyCommenters(entry, circle, userID)

	return &comment, nil
}

// ListComments returns a recommendation's thread in chronological order
func (cs *CirclesService) ListComments(circleMovieID, userID uuid.UUID) ([]models.Comment, error) {
	_, circle, err := cs.getCircleMovie(circleMovieID)
	if err != nil {
		return nil, err
	}
	if err := cs.requireMember(circle, userID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	err = cs.db.
		Preload("User").
		Where("circle_movie_id = ?", circleMovieID).
		Order("created_at ASC").
		Limit(commentListLimit).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// getCircle loads a circle or returns ErrNotFound
func (cs *CirclesService) getCircle(circleID uuid.UUID) (*models.Circle, error) {
	var circle models.Circle
	err := cs.db.First(&circle, "id = ?", circleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up circle: %w", err)
	}
	return &circle, nil
}

// getCircleMovie loads a recommendation and its circle
func (cs *CirclesService) getCircleMovie(circleMovieID uuid.UUID) (*models.CircleMovie, *models.Circle, error) {
	var entry models.CircleMovie
	err := cs.db.First(&entry, "id = ?", circleMovieID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up circle movie: %w", err)
	}

	circle, err := cs.getCircle(entry.CircleID)
	if err != nil {
		return nil, nil, err
	}
	return &entry, circle, nil
}

// requireMember rejects callers that are neither the owner nor an accepted
// member of the circle.
func (cs *CirclesService) requireMember(circle *models.Circle, userID uuid.UUID) error {
	if circle.OwnerID == userID {
		return nil
	}
	var count int64
	err := cs.db.Model(&models.CircleMember{}).
		Where("circle_id = ? AND user_id = ? AND status = ?", circle.ID, userID, models.MemberStatusAccepted).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if count == 0 {
		return ErrForbidden
	}
	return nil
}

// memberCount returns accepted members plus the implicit owner
func (cs *CirclesService) memberCount(circleID uuid.UUID) (int, error) {
	var count int64
	err := cs.db.Model(&models.CircleMember{}).
		Where("circle_id = ? AND status = ?", circleID, models.MemberStatusAccepted).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return int(count) + 1, nil
}

// effectiveMemberIDs returns the owner plus all accepted member ids
func (cs *CirclesService) effectiveMemberIDs(circle *models.Circle) ([]uuid.UUID, error) {
	ids := []uuid.UUID{circle.OwnerID}

	var rows []models.CircleMember
	err := cs.db.
		Where("circle_id = ? AND status = ?", circle.ID, models.MemberStatusAccepted).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load members: %w", err)
	}
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	return ids, nil
}

// notifyInvite sends the invite notification to a resolved invitee
func (cs *CirclesService) notifyInvite(invitee *models.User, circle *models.Circle, inviterID uuid.UUID) {
	var inviter models.User
	inviterName := ""
	if err := cs.db.First(&inviter, "id = ?", inviterID).Error; err == nil {
		inviterName = displayName(&inviter)
	}

	if err := cs.notifications.Create(invitee.ID, models.NotificationCircleInvite,
		"Circle invitation",
		fmt.Sprintf("%s invited you to join %s", inviterName, circle.Name),
		map[string]interface{}{
			"circle_id":   circle.ID.String(),
			"circle_name": circle.Name,
			"actor_name":  inviterName,
		},
		"/circles"); err != nil {
		log.Printf("Failed to notify invitee: %v", err)
	}
}

// notifyMembers fans a notification out to every effective member except the actor
func (cs *CirclesService) notifyMembers(circle *models.Circle, actorID uuid.UUID, ntype, title, message string, metadata map[string]interface{}) {
	ids, err := cs.effectiveMemberIDs(circle)
	if err != nil {
		return
	}
	for _, id := range ids {
		if id == actorID {
			continue
		}
		if err := cs.notifications.Create(id, ntype, title, message, metadata, "/circles/"+circle.ID.String()); err != nil {
			log.Printf("Failed to notify member %s: %v", id, err)
		}
	}
}

// notifyCommenters notifies the recommender and previous commenters of a new
// comment, skipping the author.
func (cs *CirclesService) notifyCommenters(entry *models.CircleMovie, circle *models.Circle, authorID uuid.UUID) {
	var author models.User
	authorName := ""
	if err := cs.db.First(&author, "id = ?", authorID).Error; err == nil {
		authorName = displayName(&author)
	}

	var movie models.Movie
	movieTitle := ""
	if err := cs.db.Where("tmdb_id = ?", entry.MovieTMDBID).First(&movie).Error; err == nil {
		movieTitle = movie.Title
	}

	recipients := map[uuid.UUID]bool{entry.RecommendedByID: true}

	var previous []models.Comment
	if err := cs.db.Select("DISTINCT user_id").Where("circle_movie_id = ?", entry.ID).Find(&previous).Error; err == nil {
		for _, c := range previous {
			recipients[c.UserID] = true
		}
	}
	delete(recipients, authorID)

	metadata := map[string]interface{}{
		"circle_id":   circle.ID.String(),
		"circle_name": circle.Name,
		"movie_title": movieTitle,
		"actor_name":  authorName,
	}
	for id := range recipients {
		if err := cs.notifications.Create(id, models.NotificationCommentAdded,
			"New comment",
			fmt.Sprintf("%s commented on %s in %s", authorName, movieTitle, circle.Name),
			metadata,
			"/circles/"+circle.ID.String()); err != nil {
			log.Printf("Failed to notify commenter %s: %v", id, err)
		}
	}
}

// displayName prefers the profile name, falling back to the email
func displayName(user *models.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.Email
}
