package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"movie-circles/internal/models"
	"movie-circles/internal/tmdb"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieProvider is the slice of the TMDB client the movie cache depends on
type MovieProvider interface {
	SearchMovies(ctx context.Context, query string) ([]tmdb.Movie, error)
	GetMovie(ctx context.Context, tmdbID int64) (*tmdb.Movie, error)
}

// searchResultLimit caps cache search results
const searchResultLimit = 20

// MoviesService is the provider-backed movie cache. Reads are cache-first;
// provider results are upserted keyed by TMDB id, last write wins.
type MoviesService struct {
	db       *gorm.DB
	provider MovieProvider
}

// NewMoviesService creates a new movies service
func NewMoviesService(db *gorm.DB, provider MovieProvider) *MoviesService {
	return &MoviesService{
		db:       db,
		provider: provider,
	}
}

// Search returns cached movies whose title contains the query,
// case-insensitive, most popular first. It never contacts the provider;
// callers enqueue a background refresh separately.
func (ms *MoviesService) Search(query string) ([]models.Movie, error) {
	var movies []models.Movie
	err := ms.db.
		Where("title ILIKE ?", "%"+query+"%").
		Order("popularity DESC").
		Limit(searchResultLimit).
		Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search movie cache: %w", err)
	}
	return movies, nil
}

// RefreshFromProvider searches the provider and upserts every result into
// the cache. Used by the background refresh worker.
func (ms *MoviesService) RefreshFromProvider(ctx context.Context, query string) error {
	results, err := ms.provider.SearchMovies(ctx, query)
	if err != nil {
		return fmt.Errorf("provider search failed: %w", err)
	}

	for _, result := range results {
		if _, err := ms.Upsert(result); err != nil {
			return err
		}
	}
	return nil
}

// GetByTMDBID returns the cached movie, fetching it from the provider on a
// miss. Returns ErrNotFound when the provider has no record either, and
// ErrUpstream when the provider is unreachable.
func (ms *MoviesService) GetByTMDBID(ctx context.Context, tmdbID int64) (*models.Movie, error) {
	var movie models.Movie
	err := ms.db.Where("tmdb_id = ?", tmdbID).First(&movie).Error
	if err == nil {
		return &movie, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to read movie cache: %w", err)
	}

	result, err := ms.provider.GetMovie(ctx, tmdbID)
	if err != nil {
		if errors.Is(err, tmdb.ErrMovieNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return ms.Upsert(*result)
}

// EnsureCached guarantees a movie is cache-resident before other stores
// reference it by TMDB id.
func (ms *MoviesService) EnsureCached(ctx context.Context, tmdbID int64) (*models.Movie, error) {
	return ms.GetByTMDBID(ctx, tmdbID)
}

// Upsert writes a provider record into the cache keyed by TMDB id. All
// descriptive fields are overwritten on every refresh.
func (ms *MoviesService) Upsert(result tmdb.Movie) (*models.Movie, error) {
	movie := models.Movie{
		TMDBID:           result.ID,
		Title:            result.Title,
		OriginalTitle:    result.OriginalTitle,
		Overview:         result.Overview,
		ReleaseDate:      result.ReleaseDate,
		Year:             yearFromReleaseDate(result.ReleaseDate),
		PosterPath:       result.PosterPath,
		PosterURL:        tmdb.ImageURL(result.PosterPath),
		BackdropPath:     result.BackdropPath,
		BackdropURL:      tmdb.ImageURL(result.BackdropPath),
		VoteAverage:      result.VoteAverage,
		VoteCount:        result.VoteCount,
		Popularity:       result.Popularity,
		OriginalLanguage: result.OriginalLanguage,
		GenreIDs:         result.GenreIDs,
		Adult:            result.Adult,
	}

	err := ms.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tmdb_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "original_title", "overview", "release_date", "year",
			"poster_path", "poster_url", "backdrop_path", "backdrop_url",
			"vote_average", "vote_count", "popularity", "original_language",
			"genre_ids", "adult", "updated_at",
		}),
	}).Create(&movie).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert movie %d: %w", result.ID, err)
	}

	// Re-read so callers see the canonical row (the insert path above does
	// not report the surviving primary key on conflict).
	var saved models.Movie
	if err := ms.db.Where("tmdb_id = ?", result.ID).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to reload movie %d: %w", result.ID, err)
	}
	return &saved, nil
}

// yearFromReleaseDate derives the release year from a YYYY-MM-DD date
func yearFromReleaseDate(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
