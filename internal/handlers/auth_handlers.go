package handlers

import (
	"net/http"

	"github.com/openfeed/openfeed-backend/internal/auth"
	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/models"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// AuthHandler handles authentication-related routes
type AuthHandler struct {
	authService AuthServiceInterface
	jwtService  JWTServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService AuthServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	if jwtService == nil {
		panic("jwtService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
		jwtService:  jwtService,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var reg models.UserRegistration
	if err := utils.DecodeAndValidate(r, &reg); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Register the user
	user, accessToken, err := h.authService.RegisterUser(r.Context(), &reg)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Return the newly created user with its first access token
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"user":         user,
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   int(h.jwtService.GetConfig().Expiry.Seconds()),
	})
}

// Login handles user authentication
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var creds models.UserCredentials
	if err := utils.DecodeAndValidate(r, &creds); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Authenticate the user
	user, accessToken, err := h.authService.AuthenticateUser(r.Context(), &creds)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// Return the access token and user info
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"user":         user,
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   int(h.jwtService.GetConfig().Expiry.Seconds()),
	})
}

// SocialLogin handles sign-in through a social identity provider. The
// account is created on first login.
func (h *AuthHandler) SocialLogin(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var req models.SocialLoginRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	user, accessToken, created, err := h.authService.SocialLogin(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	// A first login creates the account and reports 201
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	utils.JSON(w, status, map[string]interface{}{
		"user":         user,
		"created":      created,
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   int(h.jwtService.GetConfig().Expiry.Seconds()),
	})
}

// ChangePassword handles a password change for the authenticated user
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	// Get the user ID from the context
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	// Decode and validate the request body
	var change models.PasswordChange
	if err := utils.DecodeAndValidate(r, &change); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.authService.ChangePassword(r.Context(), userID, &change); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Password successfully changed",
	})
}

// ForgotPassword handles a password reset request. The response is the
// same whether or not the email belongs to an account.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var req models.ForgotPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.authService.ForgotPassword(r.Context(), req.Email); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "If the email belongs to an account, a reset link has been sent",
	})
}

// ResetPassword redeems a reset token and sets the new password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	// Decode and validate the request body
	var req models.ResetPasswordRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.authService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Password successfully reset",
	})
}

// VerifyToken checks if the current token is valid
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	// The auth middleware already verified the token
	// Just need to get the user ID and return success
	userID, ok := auth.GetUserID(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	email, _ := auth.GetEmail(r)
	role, _ := auth.GetRole(r)

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user_id":       userID,
		"email":         email,
		"role":          role,
	})
}
