// Package models contains all data models for the movie-circles application
package models

import (
	"gorm.io/gorm"
)

// AllModels returns a slice of all model types for database migrations
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Movie{},
		&Watchstream{},
		&WatchstreamMovie{},
		&Circle{},
		&CircleMember{},
		&ExternalInvitation{},
		&CircleMovie{},
		&Comment{},
		&Notification{},
	}
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
