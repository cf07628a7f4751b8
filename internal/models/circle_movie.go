package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CircleMovie is a movie recommended into a circle. One row per
// (circle, movie) pair; re-recommending the same movie is rejected.
type CircleMovie struct {
	ID          uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CircleID    uuid.UUID `json:"circle_id" db:"circle_id" gorm:"not null;uniqueIndex:idx_circle_movie"`
	MovieTMDBID int64     `json:"movie_tmdb_id" db:"movie_tmdb_id" gorm:"not null;uniqueIndex:idx_circle_movie"`

	RecommendedByID    uuid.UUID      `json:"recommended_by_id" db:"recommended_by_id" gorm:"not null;index"`
	Recommendation     string         `json:"recommendation" db:"recommendation"`
	StreamingPlatforms datatypes.JSON `json:"streaming_platforms,omitempty" db:"streaming_platforms"`

	AddedAt time.Time `json:"added_at" db:"added_at" gorm:"autoCreateTime;index"`

	// Relationships
	Circle        Circle    `json:"circle,omitempty" gorm:"foreignKey:CircleID;references:ID"`
	RecommendedBy User      `json:"recommended_by,omitempty" gorm:"foreignKey:RecommendedByID;references:ID"`
	Comments      []Comment `json:"comments,omitempty" gorm:"foreignKey:CircleMovieID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name for the CircleMovie model
func (CircleMovie) TableName() string {
	return "circle_movies"
}
