package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/auth"
	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/models"
	"github.com/openfeed/openfeed-backend/internal/repository"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// AuthService handles registration, authentication and credential management
type AuthService struct {
	userRepo    repository.UserRepository
	jwtService  *auth.JWTService
	passwordCfg *auth.PasswordConfig
	emailSender EmailSender
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	passwordCfg *auth.PasswordConfig,
	emailSender EmailSender,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		passwordCfg: passwordCfg,
		emailSender: emailSender,
	}
}

// RegisterUser creates a new user account
func (s *AuthService) RegisterUser(ctx context.Context, reg *models.UserRegistration) (*models.User, string, error) {
	// Check if email already exists
	existsEmail, err := s.userRepo.ExistsByEmail(ctx, reg.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email existence: %w", err)
	}
	if existsEmail {
		return nil, "", utils.NewDuplicateError("User", "email", reg.Email)
	}

	// Hash the password with a fresh salt
	passwordHash, salt, err := auth.HashPassword(reg.Password, s.passwordCfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	// Create the user
	user := models.NewUser(reg.Name, reg.Email)
	user.Role = constants.RoleSubscriber
	user.PasswordHash = passwordHash
	user.Salt = salt

	// Save the user to the database
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	// Issue an access token so the client is signed in immediately
	accessToken, _, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	utils.LogAuth(constants.LogEventRegister, fmt.Sprintf("%d", user.ID), user.Email, true, "")

	return user.Sanitize(), accessToken, nil
}

// AuthenticateUser verifies user credentials and returns an access token.
// Missing accounts and bad passwords produce the same error so the response
// never reveals whether the email is registered.
func (s *AuthService) AuthenticateUser(ctx context.Context, creds *models.UserCredentials) (*models.User, string, error) {
	// Find the user by email
	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogAuth(constants.LogEventLogin, "0", creds.Email, false, "user not found")
			return nil, "", utils.NewInvalidCredentialsError()
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	// Verify the password. Verification failures of any kind, including
	// undecodable stored credentials, are reported as a mismatch.
	match, err := auth.VerifyPassword(creds.Password, user.PasswordHash, user.Salt, s.passwordCfg)
	if err != nil {
		utils.LogAuth(constants.LogEventLogin, fmt.Sprintf("%d", user.ID), user.Email, false, "verification failed")
		return nil, "", utils.NewInvalidCredentialsError()
	}

	if !match {
		utils.LogAuth(constants.LogEventLogin, fmt.Sprintf("%d", user.ID), user.Email, false, "invalid password")
		return nil, "", utils.NewInvalidCredentialsError()
	}

	// Generate the access token
	accessToken, _, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate access token: %w", err)
	}

	utils.LogAuth(constants.LogEventLogin, fmt.Sprintf("%d", user.ID), user.Email, true, "")

	return user.Sanitize(), accessToken, nil
}

// SocialLogin signs in a user verified by an external identity provider.
// The account is created or refreshed in a single upsert keyed on email,
// and the returned flag reports whether a new account was created.
func (s *AuthService) SocialLogin(ctx context.Context, req *models.SocialLoginRequest) (*models.User, string, bool, error) {
	user, created, err := s.userRepo.UpsertSocialUser(ctx, req.Name, req.Email)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to upsert social user: %w", err)
	}

	// Generate the access token
	accessToken, _, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", false, fmt.Errorf("failed to generate access token: %w", err)
	}

	utils.LogAuth(constants.LogEventSocialLogin, fmt.Sprintf("%d", user.ID), user.Email, true, "")

	return user.Sanitize(), accessToken, created, nil
}

// SetPassword replaces a user's password with a fresh hash and salt
func (s *AuthService) SetPassword(ctx context.Context, userID int64, newPassword string) error {
	passwordHash, salt, err := auth.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ChangePassword(ctx, userID, passwordHash, salt); err != nil {
		return err
	}

	utils.LogAuth(constants.LogEventPasswordChange, fmt.Sprintf("%d", userID), "", true, "")

	return nil
}

// ChangePassword verifies the current password before setting a new one
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, change *models.PasswordChange) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	match, err := auth.VerifyPassword(change.CurrentPassword, user.PasswordHash, user.Salt, s.passwordCfg)
	if err != nil || !match {
		utils.LogAuth(constants.LogEventPasswordChange, fmt.Sprintf("%d", userID), user.Email, false, "invalid current password")
		return utils.NewInvalidCredentialsError()
	}

	return s.SetPassword(ctx, userID, change.NewPassword)
}

// ForgotPassword issues a password reset token for the account registered
// under the given email and sends it by mail. The token's hash is stored on
// the account; only the most recent token remains redeemable. Unknown
// emails are ignored so the caller cannot probe for registered accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if utils.IsNotFoundError(err) {
			log.Info().Msg("Password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	// Generate a signed, expiring reset token
	token, _, err := s.jwtService.GenerateResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	// Persist the token hash on the account
	if err := s.userRepo.SetResetTokenHash(ctx, user.ID, auth.HashResetToken(token)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	// Email delivery is best-effort: the token is already redeemable, so a
	// mail failure must not fail the request.
	if err := s.emailSender.SendPasswordResetEmail(user.Email, user.Name, token); err != nil {
		log.Warn().
			Err(err).
			Int64("user_id", user.ID).
			Msg("Failed to send password reset email")
	}

	utils.LogAuth(constants.LogEventPasswordReset, fmt.Sprintf("%d", user.ID), user.Email, true, "token issued")

	return nil
}

// ResetPassword redeems a reset token and sets the new password. The token
// must carry a valid signature and be unexpired, and its hash must still be
// stored on an account. Redemption clears the stored hash atomically, so a
// token can be used at most once.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	// Reject tokens with bad signatures or past expiry before touching the store
	if _, err := s.jwtService.ValidateToken(token, constants.TokenTypeReset); err != nil {
		utils.LogAuth(constants.LogEventPasswordReset, "0", "", false, "invalid token")
		return utils.NewInvalidResetTokenError()
	}

	// Hash the new password with a fresh salt
	passwordHash, salt, err := auth.HashPassword(newPassword, s.passwordCfg)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Atomically compare the stored hash and consume the token
	if err := s.userRepo.RedeemResetToken(ctx, auth.HashResetToken(token), passwordHash, salt); err != nil {
		return err
	}

	utils.LogAuth(constants.LogEventPasswordReset, "", "", true, "password reset")

	return nil
}
