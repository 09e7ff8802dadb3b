package models

import (
	"time"

	"github.com/google/uuid"
)

// UserDB represents a user record in the database.
// PasswordHash and RefreshToken never leave the service layer.
type UserDB struct {
	UserID        uuid.UUID `json:"-" db:"user_id"`         // Primary key
	Username      string    `json:"-" db:"username"`        // Unique username, stored lowercased
	Email         string    `json:"-" db:"email"`           // Unique email
	FullName      string    `json:"-" db:"full_name"`       // Display name
	PasswordHash  string    `json:"-" db:"password_hash"`   // Hashed password, write-only
	AvatarURL     string    `json:"-" db:"avatar_url"`      // Hosted avatar image
	CoverImageURL *string   `json:"-" db:"cover_image_url"` // Optional hosted cover image
	RefreshToken  *string   `json:"-" db:"refresh_token"`   // Single active refresh token, nil when logged out
	CreatedAt     time.Time `json:"-" db:"created_at"`      // Creation timestamp
	UpdatedAt     time.Time `json:"-" db:"updated_at"`      // Last update timestamp
}

// UserPublic is the API projection of a user: everything except the
// credential fields.
type UserPublic struct {
	UserID        uuid.UUID `json:"id" db:"user_id"`
	Username      string    `json:"username" db:"username"`
	Email         string    `json:"email" db:"email"`
	FullName      string    `json:"fullName" db:"full_name"`
	AvatarURL     string    `json:"avatarUrl" db:"avatar_url"`
	CoverImageURL *string   `json:"coverImageUrl,omitempty" db:"cover_image_url"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Public returns the API projection of u.
func (u *UserDB) Public() *UserPublic {
	return &UserPublic{
		UserID:        u.UserID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarURL:     u.AvatarURL,
		CoverImageURL: u.CoverImageURL,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
