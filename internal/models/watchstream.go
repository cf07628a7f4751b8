package models

import (
	"time"

	"github.com/google/uuid"
)

// Watchstream is a user's named watch-list. Names are unique per owner.
type Watchstream struct {
	ID     uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID uuid.UUID `json:"user_id" db:"user_id" gorm:"not null;uniqueIndex:idx_watchstreams_user_name"`
	Name   string    `json:"name" db:"name" gorm:"not null;uniqueIndex:idx_watchstreams_user_name"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User   User               `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Movies []WatchstreamMovie `json:"movies,omitempty" gorm:"foreignKey:WatchstreamID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for the Watchstream model
func (Watchstream) TableName() string {
	return "watchstreams"
}
