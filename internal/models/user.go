package models

import (
	"time"
)

// User represents a registered user of the OpenFeed application.
// It contains authentication information and core profile attributes.
// Photo bytes are stored on the same row but loaded separately from
// the rest of the profile to keep list queries small.
type User struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name" validate:"required,min=2,max=50"`
	Email          string    `json:"email" db:"email" validate:"required,email"`
	Role           string    `json:"role" db:"role"`
	About          string    `json:"about,omitempty" db:"about"`
	PasswordHash   string    `json:"-" db:"password_hash"`
	Salt           string    `json:"-" db:"salt"`
	ResetTokenHash string    `json:"-" db:"reset_token_hash"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// NewUser creates a new User instance with the given name and email.
// Password fields are populated later during the registration process.
func NewUser(name, email string) *User {
	now := time.Now()
	return &User{
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return "users"
}

// Sanitize removes sensitive information from the User object when sending to clients.
// This ensures fields like the password hash are never exposed.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.Salt = ""
	sanitized.ResetTokenHash = ""
	return &sanitized
}

// UserCredentials represents the login credentials provided by a user.
type UserCredentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserRegistration represents the data required for user registration.
type UserRegistration struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,account_password"`
}

// SocialLoginRequest represents the profile data received from an external
// identity provider after it has verified the user.
type SocialLoginRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=50"`
	Email string `json:"email" validate:"required,email"`
}

// UserUpdate represents the profile fields a user is allowed to change.
// Empty fields are left untouched.
type UserUpdate struct {
	Name  string `json:"name" validate:"omitempty,min=2,max=50"`
	Email string `json:"email" validate:"omitempty,email"`
	About string `json:"about" validate:"omitempty,max=500"`
}

// PasswordChange represents a request to change the current password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,account_password"`
}

// UserSuggestion is a compact user representation returned by follow
// suggestion and search queries.
type UserSuggestion struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}
