package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/openfeed/openfeed-backend/internal/config"
	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// JWT errors
var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrExpiredToken         = errors.New("token has expired")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrInvalidTokenClaims   = errors.New("invalid token claims")
)

// CustomClaims represents the claims in a JWT token
type CustomClaims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type"` // "access" or "reset"
	jwt.RegisteredClaims
}

// JWTService provides JWT token generation and validation functionality.
// The signing key comes from the injected configuration; tokens always carry
// iat and exp claims and both are checked during validation.
type JWTService struct {
	Config *config.JWTSettings
}

// NewJWTService creates a new JWTService instance
func NewJWTService(config *config.JWTSettings) *JWTService {
	return &JWTService{
		Config: config,
	}
}

// GenerateAccessToken generates a new JWT access token for a user
func (s *JWTService) GenerateAccessToken(userID int64, email, role string) (string, string, error) {
	return s.generateToken(userID, email, role, constants.TokenTypeAccess, s.Config.Expiry)
}

// GenerateResetToken generates a short-lived token for a password reset
func (s *JWTService) GenerateResetToken(userID int64) (string, string, error) {
	return s.generateToken(userID, "", "", constants.TokenTypeReset, s.Config.ResetExpiry)
}

// generateToken creates a new JWT token with the provided parameters
func (s *JWTService) generateToken(userID int64, email, role, tokenType string, expiry time.Duration) (string, string, error) {
	// Generate a unique token ID
	jwtID := uuid.New().String()

	// Create claims with user information and expiry time
	now := time.Now()
	claims := CustomClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.Config.Issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jwtID,
		},
	}

	// Create the token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign the token with the secret key
	tokenString, err := token.SignedString([]byte(s.Config.Secret))
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, jwtID, nil
}

// ValidateToken validates a JWT token and returns its claims if valid
func (s *JWTService) ValidateToken(tokenString string, expectedType string) (*CustomClaims, error) {
	// Parse the token
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return []byte(s.Config.Secret), nil
	})

	// Handle parsing errors
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, utils.NewExpiredTokenError()
		}
		return nil, utils.NewInvalidTokenError()
	}

	// Check if the token is valid
	if !token.Valid {
		return nil, utils.NewInvalidTokenError()
	}

	// Extract and validate the claims
	claims, ok := token.Claims.(*CustomClaims)
	if !ok {
		return nil, utils.NewInvalidTokenError()
	}

	// The parser skips exp and iat when they are absent, so require them here
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return nil, utils.NewInvalidTokenError()
	}

	// Validate the token type
	if claims.TokenType != expectedType {
		return nil, utils.NewInvalidTokenError()
	}

	return claims, nil
}

// ExtractUserIDFromToken extracts the user ID from an access token string
func (s *JWTService) ExtractUserIDFromToken(tokenString string) (int64, error) {
	claims, err := s.ValidateToken(tokenString, constants.TokenTypeAccess)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
