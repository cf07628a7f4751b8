// Package services contains the store layer: business logic for movies,
// watchstreams, circles and notifications on top of gorm.
package services

import "errors"

// Sentinel errors returned by the store layer. Handlers map these onto HTTP
// statuses; raw storage errors never cross the service boundary.
var (
	// ErrNotFound means the requested entity does not exist
	ErrNotFound = errors.New("record not found")

	// ErrConflict means a uniqueness constraint rejected the write
	ErrConflict = errors.New("record already exists")

	// ErrForbidden means the caller is authenticated but not entitled
	ErrForbidden = errors.New("action not allowed")

	// ErrUpstream means the external metadata provider was unavailable
	ErrUpstream = errors.New("metadata provider unavailable")
)
