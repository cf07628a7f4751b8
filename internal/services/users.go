package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-circles/internal/auth"
	"movie-circles/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UsersService resolves Google identities to local user rows
type UsersService struct {
	db *gorm.DB
}

// NewUsersService creates a new users service
func NewUsersService(db *gorm.DB) *UsersService {
	return &UsersService{db: db}
}

// UpsertFromGoogle creates the user on first sign-in, matched by Google
// subject id, and refreshes name, picture and last-login on every later one.
func (us *UsersService) UpsertFromGoogle(profile *auth.GoogleProfile) (*models.User, error) {
	email := strings.ToLower(profile.Email)

	var user models.User
	err := us.db.Where("google_id = ?", profile.Sub).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			GoogleID:    profile.Sub,
			Email:       email,
			Name:        profile.Name,
			Picture:     profile.Picture,
			LastLoginAt: time.Now(),
		}
		if err := us.db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return &user, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user.Name = profile.Name
	user.Picture = profile.Picture
	user.LastLoginAt = time.Now()
	if err := us.db.Save(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to refresh user: %w", err)
	}
	return &user, nil
}

// GetByID returns a user by id
func (us *UsersService) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := us.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// GetByEmail returns a user by email (case-insensitive)
func (us *UsersService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := us.db.Where("email = ?", strings.ToLower(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}
