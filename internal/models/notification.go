package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification types produced by circle and watchstream side effects
const (
	NotificationCircleInvite     = "circle_invite"
	NotificationInviteAccepted   = "invite_accepted"
	NotificationMovieRecommended = "movie_recommended"
	NotificationCommentAdded     = "comment_added"
)

// Notification is a durable per-user event. Rows are only ever created by
// side effects of other mutations, never directly by a client.
type Notification struct {
	ID     uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID uuid.UUID `json:"user_id" db:"user_id" gorm:"not null;index"`

	Type     string         `json:"type" db:"type" gorm:"not null"`
	Title    string         `json:"title" db:"title" gorm:"not null"`
	Message  string         `json:"message" db:"message"`
	Metadata datatypes.JSON `json:"metadata,omitempty" db:"metadata"`
	Link     string         `json:"link,omitempty" db:"link"`
	Read     bool           `json:"read" db:"read" gorm:"default:false;index"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime;index"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// TableName sets the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
