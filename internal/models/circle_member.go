package models

import (
	"time"

	"github.com/google/uuid"
)

// Membership status values for a circle member
const (
	MemberStatusPending  = "pending"
	MemberStatusAccepted = "accepted"
	MemberStatusDeclined = "declined"
)

// CircleMember tracks the invitation lifecycle for a (circle, user) pair.
// Exactly one row per pair; a declined or removed member has no row.
type CircleMember struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CircleID uuid.UUID `json:"circle_id" db:"circle_id" gorm:"not null;uniqueIndex:idx_circle_member"`
	UserID   uuid.UUID `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_circle_member"`

	Status      string     `json:"status" db:"status" gorm:"not null;default:pending;index"`
	InvitedByID uuid.UUID  `json:"invited_by_id" db:"invited_by_id" gorm:"not null"`
	InvitedAt   time.Time  `json:"invited_at" db:"invited_at" gorm:"autoCreateTime"`
	JoinedAt    *time.Time `json:"joined_at" db:"joined_at"`

	// Relationships
	Circle    Circle `json:"circle,omitempty" gorm:"foreignKey:CircleID;references:ID"`
	User      User   `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	InvitedBy User   `json:"invited_by,omitempty" gorm:"foreignKey:InvitedByID;references:ID"`
}

// TableName sets the table name for the CircleMember model
func (CircleMember) TableName() string {
	return "circle_members"
}
