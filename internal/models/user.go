package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account created on first successful Google sign-in
type User struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	GoogleID string    `json:"google_id" db:"google_id" gorm:"uniqueIndex;not null"`
	Email    string    `json:"email" db:"email" gorm:"uniqueIndex;not null"`
	Name     string    `json:"name" db:"name"`
	Picture  string    `json:"picture" db:"picture"`

	CreatedAt   time.Time `json:"created_at" db:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at" gorm:"autoUpdateTime"`
	LastLoginAt time.Time `json:"last_login_at" db:"last_login_at"`

	// Relationships
	Watchstreams []Watchstream `json:"watchstreams,omitempty" gorm:"foreignKey:UserID"`
	OwnedCircles []Circle      `json:"owned_circles,omitempty" gorm:"foreignKey:OwnerID"`
}

// TableName sets the table name for the User model
func (User) TableName() string {
	return "users"
}
