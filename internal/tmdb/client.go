// Package tmdb implements a client for The Movie Database v3 API, the
// external metadata provider backing the local movie cache.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const imageBaseURL = "https://image.tmdb.org/t/p/w500"

// Client represents a TMDB API client
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new TMDB client
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Movie represents a movie record as returned by TMDB
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title"`
	Overview         string  `json:"overview"`
	ReleaseDate      string  `json:"release_date"`
	PosterPath       string  `json:"poster_path"`
	BackdropPath     string  `json:"backdrop_path"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	GenreIDs         []int64 `json:"genre_ids"`
	Adult            bool    `json:"adult"`
}

// Genres is only present on the detail endpoint; SearchResponse carries
// genre_ids instead.
type genre struct {
	ID int64 `json:"id"`
}

type movieDetail struct {
	Movie
	Genres []genre `json:"genres"`
}

// SearchResponse represents a TMDB search result page
type SearchResponse struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Movie `json:"results"`
}

// ImageURL resolves a TMDB image path to a full URL
func ImageURL(path string) string {
	if path == "" {
		return ""
	}
	return imageBaseURL + path
}

// SearchMovies searches TMDB for movies matching the query
func (c *Client) SearchMovies(ctx context.Context, query string) ([]Movie, error) {
	u, err := url.Parse(c.baseURL + "/search/movie")
	if err != nil {
		return nil, fmt.Errorf("failed to build search URL: %w", err)
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("query", query)
	q.Set("include_adult", "false")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB search returned status %d", resp.StatusCode)
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return out.Results, nil
}

// ErrMovieNotFound is returned when TMDB has no record for the requested id
var ErrMovieNotFound = fmt.Errorf("movie not found")

// GetMovie fetches a single movie by TMDB id
func (c *Client) GetMovie(ctx context.Context, tmdbID int64) (*Movie, error) {
	u := fmt.Sprintf("%s/movie/%d?api_key=%s", c.baseURL, tmdbID, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch movie %d: %w", tmdbID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrMovieNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB movie endpoint returned status %d", resp.StatusCode)
	}

	var detail movieDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		return nil, fmt.Errorf("failed to parse movie response: %w", err)
	}

	// The detail endpoint nests genres as objects; flatten to ids so the
	// shape matches search results.
	if len(detail.GenreIDs) == 0 && len(detail.Genres) > 0 {
		ids := make([]int64, 0, len(detail.Genres))
		for _, g := range detail.Genres {
			ids = append(ids, g.ID)
		}
		detail.GenreIDs = ids
	}

	return &detail.Movie, nil
}
