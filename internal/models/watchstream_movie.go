package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Watch status values for a watchstream entry
const (
	WatchStatusBacklog = "backlog"
	WatchStatusWatched = "watched"
)

// WatchstreamMovie is the join between a watchstream and a cached movie.
// At most one row per (watchstream, movie) pair.
type WatchstreamMovie struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	WatchstreamID uuid.UUID `json:"watchstream_id" db:"watchstream_id" gorm:"not null;uniqueIndex:idx_watchstream_movie"`
	MovieTMDBID   int64     `json:"movie_tmdb_id" db:"movie_tmdb_id" gorm:"not null;uniqueIndex:idx_watchstream_movie"`

	WatchStatus        string         `json:"watch_status" db:"watch_status" gorm:"not null;default:backlog;index"`
	StreamingPlatforms datatypes.JSON `json:"streaming_platforms,omitempty" db:"streaming_platforms"`

	AddedAt   time.Time `json:"added_at" db:"added_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Watchstream Watchstream `json:"watchstream,omitempty" gorm:"foreignKey:WatchstreamID;references:ID"`
}

// TableName sets the table name for the WatchstreamMovie model
func (WatchstreamMovie) TableName() string {
	return "watchstream_movies"
}

// StreamingPlatform describes where a movie can currently be streamed
type StreamingPlatform struct {
	Name string `json:"name"`
	Logo string `json:"logo,omitempty"`
}
