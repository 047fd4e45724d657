package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/models"
	"github.com/openfeed/openfeed-backend/internal/repository"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// UserService handles user profile and follow operations
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitize(), nil
}

// ListUsers retrieves a page of users
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]*models.User, int, error) {
	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	sanitized := make([]*models.User, len(users))
	for i, user := range users {
		sanitized[i] = user.Sanitize()
	}
	return sanitized, total, nil
}

// UpdateUser updates a user's profile. Only the fields named in the update
// struct can change; empty fields are ignored.
func (s *UserService) UpdateUser(ctx context.Context, id int64, update *models.UserUpdate) (*models.User, error) {
	// Get the existing user
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := false

	// Update name if provided
	if update.Name != "" && update.Name != user.Name {
		user.Name = update.Name
		changes = true
	}

	// Update email if provided
	if update.Email != "" && update.Email != user.Email {
		// Check if email is already taken
		exists, err := s.userRepo.ExistsByEmail(ctx, update.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email existence: %w", err)
		}
		if exists {
			return nil, utils.NewDuplicateError("User", "email", update.Email)
		}

		user.Email = update.Email
		changes = true
	}

	// Update about text if provided
	if update.About != "" && update.About != user.About {
		user.About = update.About
		changes = true
	}

	// Save updates if any changes were made
	if changes {
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		log.Info().
			Int64("user_id", user.ID).
			Msg("User profile updated")
	}

	return user.Sanitize(), nil
}

// DeleteUser permanently removes a user account and all associated data
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	log.Info().
		Int64("user_id", id).
		Msg("User account deleted")

	return nil
}

// GetPhoto retrieves a user's photo bytes and content type
func (s *UserService) GetPhoto(ctx context.Context, id int64) ([]byte, string, error) {
	return s.userRepo.GetPhoto(ctx, id)
}

// UpdatePhoto stores a user's photo
func (s *UserService) UpdatePhoto(ctx context.Context, id int64, photo []byte, contentType string) error {
	return s.userRepo.UpdatePhoto(ctx, id, photo, contentType)
}

// Follow makes one user follow another. A user cannot follow themselves.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID int64) error {
	if followerID == followeeID {
		return utils.NewBadRequestError(constants.MsgCannotFollowSelf)
	}
	return s.followRepo.Follow(ctx, followerID, followeeID)
}

// Unfollow removes a follow edge. Unfollowing a user who was never
// followed is a no-op.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID int64) error {
	return s.followRepo.Unfollow(ctx, followerID, followeeID)
}

// GetFollowers retrieves the users who follow the given user
func (s *UserService) GetFollowers(ctx context.Context, userID int64) ([]*models.UserSuggestion, error) {
	// Verify the user exists so a missing account yields a 404
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

// GetFollowing retrieves the users the given user follows
func (s *UserService) GetFollowing(ctx context.Context, userID int64) ([]*models.UserSuggestion, error) {
	// Verify the user exists so a missing account yields a 404
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

// GetSuggestions retrieves users the given user might want to follow
func (s *UserService) GetSuggestions(ctx context.Context, userID int64, limit int) ([]*models.UserSuggestion, error) {
	return s.followRepo.Suggestions(ctx, userID, limit)
}
