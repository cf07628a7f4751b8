package services

import (
	"context"
	"errors"
	"testing"

	"movie-circles/internal/models"
	"movie-circles/internal/tmdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMoviesService_UpsertIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newCachedMoviesService(db)

	first, err := service.Upsert(testMovie(603, "The Matrix", 80))
	require.NoError(t, err)

	updated := testMovie(603, "The Matrix", 95)
	updated.Overview = "refreshed overview"
	second, err := service.Upsert(updated)
	require.NoError(t, err)

	var count int64
	db.Model(&models.Movie{}).Where("tmdb_id = ?", 603).Count(&count)
	assert.Equal(t, int64(1), count, "upsert must not duplicate rows")

	// Last write wins on descriptive fields, identity row survives
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "refreshed overview", second.Overview)
	assert.Equal(t, float64(95), second.Popularity)
}

func TestMoviesService_UpsertDerivesYearAndImageURLs(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newCachedMoviesService(db)

	record := testMovie(603, "The Matrix", 80)
	record.PosterPath = "/poster.jpg"
	movie, err := service.Upsert(record)
	require.NoError(t, err)

	assert.Equal(t, 1999, movie.Year)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", movie.PosterURL)
	assert.Empty(t, movie.BackdropURL)
}

func TestMoviesService_SearchIsCacheOnly(t *testing.T) {
	db := setupTestDB(t)
	service, provider := newCachedMoviesService(db)

	_, err := service.Upsert(testMovie(603, "The Matrix", 80))
	require.NoError(t, err)
	_, err = service.Upsert(testMovie(604, "The Matrix Reloaded", 90))
	require.NoError(t, err)
	_, err = service.Upsert(testMovie(27205, "Inception", 99))
	require.NoError(t, err)

	results, err := service.Search("matrix")
	require.NoError(t, err)

	require.Len(t, results, 2)
	// Case-insensitive substring match, most popular first
	assert.Equal(t, int64(604), results[0].TMDBID)
	assert.Equal(t, int64(603), results[1].TMDBID)

	// The provider is never consulted by Search itself
	provider.AssertNotCalled(t, "SearchMovies", mock.Anything, mock.Anything)
}

func TestMoviesService_SearchMissReturnsEmpty(t *testing.T) {
	db := setupTestDB(t)
	service, _ := newCachedMoviesService(db)

	results, err := service.Search("nothing cached")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMoviesService_RefreshFromProviderFillsCache(t *testing.T) {
	db := setupTestDB(t)
	provider := new(MockMovieProvider)
	service := NewMoviesService(db, provider)

	provider.On("SearchMovies", mock.Anything, "matrix").Return([]tmdb.Movie{
		testMovie(603, "The Matrix", 80),
		testMovie(604, "The Matrix Reloaded", 90),
	}, nil)

	require.NoError(t, service.RefreshFromProvider(context.Background(), "matrix"))

	results, err := service.Search("matrix")
	require.NoError(t, err)
	assert.Len(t, results, 2)
	provider.AssertExpectations(t)
}

func TestMoviesService_GetByTMDBID(t *testing.T) {
	db := setupTestDB(t)

	t.Run("cache hit skips the provider", func(t *testing.T) {
		service, provider := newCachedMoviesService(db)
		_, err := service.Upsert(testMovie(603, "The Matrix", 80))
		require.NoError(t, err)

		movie, err := service.GetByTMDBID(context.Background(), 603)
		require.NoError(t, err)
		assert.Equal(t, "The Matrix", movie.Title)
		provider.AssertNotCalled(t, "GetMovie", mock.Anything, mock.Anything)
	})

	t.Run("cache miss fetches and caches", func(t *testing.T) {
		provider := new(MockMovieProvider)
		service := NewMoviesService(db, provider)
		record := testMovie(27205, "Inception", 99)
		provider.On("GetMovie", mock.Anything, int64(27205)).Return(&record, nil).Once()

		movie, err := service.GetByTMDBID(context.Background(), 27205)
		require.NoError(t, err)
		assert.Equal(t, "Inception", movie.Title)

		// Second read is served from cache
		again, err := service.GetByTMDBID(context.Background(), 27205)
		require.NoError(t, err)
		assert.Equal(t, movie.ID, again.ID)
		provider.AssertExpectations(t)
	})

	t.Run("provider miss maps to ErrNotFound", func(t *testing.T) {
		provider := new(MockMovieProvider)
		service := NewMoviesService(db, provider)
		provider.On("GetMovie", mock.Anything, int64(999999)).Return(nil, tmdb.ErrMovieNotFound)

		_, err := service.GetByTMDBID(context.Background(), 999999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("provider outage maps to ErrUpstream", func(t *testing.T) {
		provider := new(MockMovieProvider)
		service := NewMoviesService(db, provider)
		provider.On("GetMovie", mock.Anything, int64(888888)).Return(nil, errors.New("connection refused"))

		_, err := service.GetByTMDBID(context.Background(), 888888)
		assert.ErrorIs(t, err, ErrUpstream)
	})
}
