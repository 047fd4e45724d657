// Package handlers provides HTTP request handlers for the OpenFeed API.
package handlers

import (
	"context"

	"github.com/openfeed/openfeed-backend/internal/auth"
	"github.com/openfeed/openfeed-backend/internal/config"
	"github.com/openfeed/openfeed-backend/internal/models"
)

// AuthServiceInterface defines the methods required from the authentication service.
// This interface is used by the auth handlers to interact with the authentication business logic
// without being tightly coupled to the implementation.
type AuthServiceInterface interface {
	// RegisterUser registers a new user with the provided registration data.
	// It returns the newly created user along with an access token, or an
	// error if registration fails (e.g., duplicate email).
	RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, string, error)

	// AuthenticateUser authenticates a user with the provided credentials.
	// It returns the authenticated user and an access token. Any failure,
	// whether an unknown email or a wrong password, yields the same error.
	AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.User, string, error)

	// SocialLogin signs a user in through a social identity provider.
	// The account is created on first login; the boolean reports whether
	// this call created it.
	SocialLogin(ctx context.Context, req *models.SocialLoginRequest) (*models.User, string, bool, error)

	// ChangePassword replaces a user's password after verifying the
	// current one.
	ChangePassword(ctx context.Context, userID int64, change *models.PasswordChange) error

	// ForgotPassword issues a password reset token and emails it to the
	// account holder. Unknown emails succeed silently.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword redeems a reset token and sets the new password.
	// A token can be redeemed at most once.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// JWTServiceInterface defines the methods required from the JWT service.
type JWTServiceInterface interface {
	// ValidateToken validates a JWT token and returns its claims.
	ValidateToken(tokenString string, expectedType string) (*auth.CustomClaims, error)

	// GetConfig returns the JWT settings configuration.
	GetConfig() *config.JWTSettings
}
