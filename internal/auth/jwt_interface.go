package auth

import (
	"github.com/openfeed/openfeed-backend/internal/config"
)

// JWTValidator defines the interface for JWT validation
type JWTValidator interface {
	// ValidateToken validates a JWT token and returns its claims if valid
	ValidateToken(tokenString string, expectedType string) (*CustomClaims, error)

	// GetConfig returns the JWT settings configuration
	GetConfig() *config.JWTSettings
}

// GetConfig returns the JWT settings configuration
func (s *JWTService) GetConfig() *config.JWTSettings {
	return s.Config
}
