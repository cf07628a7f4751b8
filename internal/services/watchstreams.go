package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"movie-circles/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// WatchstreamsService manages per-user watch-lists and their entries
type WatchstreamsService struct {
	db     *gorm.DB
	movies *MoviesService
}

// NewWatchstreamsService creates a new watchstreams service
func NewWatchstreamsService(db *gorm.DB, movies *MoviesService) *WatchstreamsService {
	return &WatchstreamsService{
		db:     db,
		movies: movies,
	}
}

// WatchstreamEntry is a watchstream join row enriched with its cached movie
type WatchstreamEntry struct {
	models.WatchstreamMovie
	Movie *models.Movie `json:"movie,omitempty"`
}

// Create makes a new empty watchstream. Names are unique per owner.
func (ws *WatchstreamsService) Create(userID uuid.UUID, name string) (*models.Watchstream, error) {
	stream := models.Watchstream{
		UserID: userID,
		Name:   name,
	}
	if err := ws.db.Create(&stream).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create watchstream: %w", err)
	}
	return &stream, nil
}

// List returns all of a user's watchstreams, newest first
func (ws *WatchstreamsService) List(userID uuid.UUID) ([]models.Watchstream, error) {
	var streams []models.Watchstream
	err := ws.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&streams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list watchstreams: %w", err)
	}
	return streams, nil
}

// Rename changes a watchstream's name, preserving per-owner uniqueness
func (ws *WatchstreamsService) Rename(id, userID uuid.UUID, name string) (*models.Watchstream, error) {
	stream, err := ws.getOwned(id, userID)
	if err != nil {
		return nil, err
	}

	stream.Name = name
	if err := ws.db.Save(stream).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to rename watchstream: %w", err)
	}
	return stream, nil
}

// Delete removes a watchstream together with its entries
func (ws *WatchstreamsService) Delete(id, userID uuid.UUID) error {
	stream, err := ws.getOwned(id, userID)
	if err != nil {
		return err
	}

	return ws.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("watchstream_id = ?", stream.ID).Delete(&models.WatchstreamMovie{}).Error; err != nil {
			return fmt.Errorf("failed to delete watchstream entries: %w", err)
		}
		if err := tx.Delete(stream).Error; err != nil {
			return fmt.Errorf("failed to delete watchstream: %w", err)
		}
		return nil
	})
}

// AddMovie inserts a movie into a watchstream, fetching it into the cache
// first if needed. At most one entry per (watchstream, movie) pair.
func (ws *WatchstreamsService) AddMovie(ctx context.Context, streamID, userID uuid.UUID, tmdbID int64, status string, platforms []models.StreamingPlatform) (*WatchstreamEntry, error) {
	stream, err := ws.getOwned(streamID, userID)
	if err != nil {
		return nil, err
	}

	movie, err := ws.movies.EnsureCached(ctx, tmdbID)
	if err != nil {
		return nil, err
	}

	entry := models.WatchstreamMovie{
		WatchstreamID: stream.ID,
		MovieTMDBID:   tmdbID,
		WatchStatus:   status,
	}
	if entry.StreamingPlatforms, err = encodePlatforms(platforms); err != nil {
		return nil, err
	}

	if err := ws.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to add movie to watchstream: %w", err)
	}

	return &WatchstreamEntry{WatchstreamMovie: entry, Movie: movie}, nil
}

// UpdateStatus overwrites the status and platforms of an existing entry.
// A missing (watchstream, movie) pair is a silent no-op.
func (ws *WatchstreamsService) UpdateStatus(streamID, userID uuid.UUID, tmdbID int64, status string, platforms []models.StreamingPlatform) error {
	stream, err := ws.getOwned(streamID, userID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"watch_status": status}
	if platforms != nil {
		encoded, err := encodePlatforms(platforms)
		if err != nil {
			return err
		}
		updates["streaming_platforms"] = encoded
	}

	err = ws.db.Model(&models.WatchstreamMovie{}).
		Where("watchstream_id = ? AND movie_tmdb_id = ?", stream.ID, tmdbID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to update watch status: %w", err)
	}
	return nil
}

// RemoveMovie deletes an entry from a watchstream
func (ws *WatchstreamsService) RemoveMovie(streamID, userID uuid.UUID, tmdbID int64) error {
	stream, err := ws.getOwned(streamID, userID)
	if err != nil {
		return err
	}

	result := ws.db.
		Where("watchstream_id = ? AND movie_tmdb_id = ?", stream.ID, tmdbID).
		Delete(&models.WatchstreamMovie{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove movie from watchstream: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListMovies returns entries filtered by status (or all when status is
// empty), most recently added first, each enriched with its cached movie.
func (ws *WatchstreamsService) ListMovies(streamID, userID uuid.UUID, status string) ([]WatchstreamEntry, error) {
	stream, err := ws.getOwned(streamID, userID)
	if err != nil {
		return nil, err
	}

	query := ws.db.Where("watchstream_id = ?", stream.ID)
	if status != "" {
		query = query.Where("watch_status = ?", status)
	}

	var rows []models.WatchstreamMovie
	if err := query.Order("added_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list watchstream movies: %w", err)
	}

	movies, err := ws.moviesByTMDBID(rows)
	if err != nil {
		return nil, err
	}

	entries := make([]WatchstreamEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, WatchstreamEntry{
			WatchstreamMovie: row,
			Movie:            movies[row.MovieTMDBID],
		})
	}
	return entries, nil
}

// getOwned loads a watchstream and verifies ownership
func (ws *WatchstreamsService) getOwned(id, userID uuid.UUID) (*models.Watchstream, error) {
	var stream models.Watchstream
	err := ws.db.First(&stream, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up watchstream: %w", err)
	}
	if stream.UserID != userID {
		return nil, ErrForbidden
	}
	return &stream, nil
}

// moviesByTMDBID loads the cached movies referenced by a set of join rows
func (ws *WatchstreamsService) moviesByTMDBID(rows []models.WatchstreamMovie) (map[int64]*models.Movie, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.MovieTMDBID)
	}

	var movies []models.Movie
	if err := ws.db.Where("tmdb_id IN ?", ids).Find(&movies).Error; err != nil {
		return nil, fmt.Errorf("failed to load cached movies: %w", err)
	}

	byID := make(map[int64]*models.Movie, len(movies))
	for i := range movies {
		byID[movies[i].TMDBID] = &movies[i]
	}
	return byID, nil
}

// encodePlatforms serializes a streaming platform list to a JSON column
func encodePlatforms(platforms []models.StreamingPlatform) (datatypes.JSON, error) {
	if platforms == nil {
		return nil, nil
	}
	raw, err := json.Marshal(platforms)
	if err != nil {
		return nil, fmt.Errorf("failed to encode streaming platforms: %w", err)
	}
	return datatypes.JSON(raw), nil
}
