// user_interfaces.go

// Package handlers provides HTTP request handlers and service interfaces for the OpenFeed application.
// This file defines service interfaces related to user management,
// establishing clear contracts between handlers and service implementations.
// The interfaces follow the dependency injection pattern, allowing for more modular code
// and easier testing through mocked implementations.
package handlers

import (
	"context"

	"github.com/openfeed/openfeed-backend/internal/models"
)

// UserServiceInterface defines the methods required from UserService.
// This interface encapsulates user profile and follow operations, allowing
// handlers to interact with user data without depending on specific
// implementations.
type UserServiceInterface interface {
	// GetUserByID retrieves a user by their unique identifier. The returned
	// user never carries credential fields.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// ListUsers retrieves a page of users together with the total count.
	ListUsers(ctx context.Context, page, pageSize int) ([]*models.User, int, error)

	// UpdateUser modifies a user's profile based on the provided update
	// data. Fields left empty in the update are not changed.
	UpdateUser(ctx context.Context, id int64, update *models.UserUpdate) (*models.User, error)

	// DeleteUser permanently removes a user account and all associated data.
	DeleteUser(ctx context.Context, id int64) error

	// GetPhoto retrieves a user's photo bytes and content type.
	GetPhoto(ctx context.Context, id int64) ([]byte, string, error)

	// UpdatePhoto stores a user's photo.
	UpdatePhoto(ctx context.Context, id int64, photo []byte, contentType string) error

	// Follow makes one user follow another.
	Follow(ctx context.Context, followerID, followeeID int64) error

	// Unfollow removes a follow edge.
	Unfollow(ctx context.Context, followerID, followeeID int64) error

	// GetFollowers lists the users following the given user.
	GetFollowers(ctx context.Context, userID int64) ([]*models.UserSuggestion, error)

	// GetFollowing lists the users the given user follows.
	GetFollowing(ctx context.Context, userID int64) ([]*models.UserSuggestion, error)

	// GetSuggestions lists users the given user does not follow yet.
	GetSuggestions(ctx context.Context, userID int64, limit int) ([]*models.UserSuggestion, error)
}
