package models

import (
	"time"

	"github.com/google/uuid"
)

// ExternalInvitation is a circle invitation addressed to an email that has no
// account yet. It is converted into a pending CircleMember row the first time
// that email completes a sign-in, then deleted.
type ExternalInvitation struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CircleID uuid.UUID `json:"circle_id" db:"circle_id" gorm:"not null;uniqueIndex:idx_external_invitation"`
	Email    string    `json:"email" db:"email" gorm:"not null;uniqueIndex:idx_external_invitation;index"`

	InvitedByID uuid.UUID `json:"invited_by_id" db:"invited_by_id" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`

	// Relationships
	Circle    Circle `json:"circle,omitempty" gorm:"foreignKey:CircleID;references:ID"`
	InvitedBy User   `json:"invited_by,omitempty" gorm:"foreignKey:InvitedByID;references:ID"`
}

// TableName sets the table name for the ExternalInvitation model
func (ExternalInvitation) TableName() string {
	return "external_invitations"
}
