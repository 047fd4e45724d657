package constants

// Context Key Names
const (
	UserIDContextKey    = "user_id"
	EmailContextKey     = "email"
	RoleContextKey      = "role"
	RequestIDContextKey = "request_id"
)

// Auth Token Types
const (
	TokenTypeAccess = "access"
	TokenTypeReset  = "reset"
)

// Password Validation
const (
	MinPasswordLength = 6
	MinNameLength     = 2
	MaxNameLength     = 50
	MaxEmailLength    = 255
)

// Rate Limiting
const (
	AuthRateLimitRequests = 10
	AuthRateLimitWindow   = 60 // in seconds
)
