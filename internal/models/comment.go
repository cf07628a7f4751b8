package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an append-only discussion entry under a circle recommendation
type Comment struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CircleMovieID uuid.UUID `json:"circle_movie_id" db:"circle_movie_id" gorm:"not null;index"`
	UserID        uuid.UUID `json:"user_id" db:"user_id" gorm:"not null;index"`
	Content       string    `json:"content" db:"content" gorm:"not null"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime;index"`

	// Relationships
	CircleMovie CircleMovie `json:"circle_movie,omitempty" gorm:"foreignKey:CircleMovieID;references:ID"`
	User        User        `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// TableName sets the table name for the Comment model
func (Comment) TableName() string {
	return "comments"
}
