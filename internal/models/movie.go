package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Movie is a locally cached copy of a TMDB record. Identity is the TMDB id;
// every other field is overwritten on each refresh from the provider.
type Movie struct {
	ID     uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TMDBID int64     `json:"tmdb_id" db:"tmdb_id" gorm:"uniqueIndex;not null"`

	Title            string        `json:"title" db:"title" gorm:"not null;index"`
	OriginalTitle    string        `json:"original_title" db:"original_title"`
	Overview         string        `json:"overview" db:"overview"`
	ReleaseDate      string        `json:"release_date" db:"release_date"`
	Year             int           `json:"year" db:"year"`
	PosterPath       string        `json:"poster_path" db:"poster_path"`
	PosterURL        string        `json:"poster_url" db:"poster_url"`
	BackdropPath     string        `json:"backdrop_path" db:"backdrop_path"`
	BackdropURL      string        `json:"backdrop_url" db:"backdrop_url"`
	VoteAverage      float64       `json:"vote_average" db:"vote_average" gorm:"default:0.0"`
	VoteCount        int           `json:"vote_count" db:"vote_count" gorm:"default:0"`
	Popularity       float64       `json:"popularity" db:"popularity" gorm:"default:0.0"`
	OriginalLanguage string        `json:"original_language" db:"original_language"`
	GenreIDs         pq.Int64Array `json:"genre_ids" db:"genre_ids" gorm:"type:bigint[]"`
	Adult            bool          `json:"adult" db:"adult" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for the Movie model
func (Movie) TableName() string {
	return "movies"
}
