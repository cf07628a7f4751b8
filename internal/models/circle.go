package models

import (
	"time"

	"github.com/google/uuid"
)

// Circle is a shared group where members recommend and discuss movies.
// The owner is an implicit member and has no row in circle_members.
type Circle struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id" gorm:"not null;index"`
	Name        string    `json:"name" db:"name" gorm:"not null"`
	Description string    `json:"description" db:"description"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Owner   User           `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Members []CircleMember `json:"members,omitempty" gorm:"foreignKey:CircleID;constraint:OnDelete:CASCADE"`
	Movies  []CircleMovie  `json:"movies,omitempty" gorm:"foreignKey:CircleID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for the Circle model
func (Circle) TableName() string {
	return "circles"
}
