// Package server provides the HTTP server implementation for the OpenFeed API.
// It handles routing, middleware configuration, and server lifecycle management.
//
// The package follows a structured approach to route organization, with clear
// grouping based on functionality (auth, users, posts) and proper security
// measures for protected routes. CORS and other security headers are carefully
// configured to provide secure access while enabling legitimate API usage.
package server

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/middleware"
	"github.com/openfeed/openfeed-backend/internal/utils"
)

// SetupRoutes configures the routes for the application.
// It creates a router hierarchy with middleware and grouped routes
// according to functionality for organized API structure.
//
// The configured routes include:
// - Health check and version endpoints (unprotected)
// - Authentication endpoints (signup, signin, social login, password reset)
// - User endpoints (profiles, photos, follows, suggestions)
// - Post endpoints (posts, feed, likes, comments, photos)
//
// Route protection is handled through middleware for authenticated endpoints.
// Authentication endpoints carry a per-client rate limit.
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	allowedOrigins := getAllowedOrigins()

	// Custom CORS middleware that applies to all routes
	r.Use(corsMiddleware(allowedOrigins))

	// Base middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders())

	authLimiter := middleware.NewRateLimiter(
		constants.AuthRateLimitRequests,
		time.Duration(constants.AuthRateLimitWindow)*time.Second,
	)

	// Health check and version routes (unprotected)
	r.Group(func(r chi.Router) {
		r.Get(constants.HealthPath, func(w http.ResponseWriter, r *http.Request) {
			if err := s.Db.HealthCheck(r.Context()); err != nil {
				log.Error().Err(err).Msg("Health check failed")
				utils.Error(w, http.StatusServiceUnavailable, "service_unavailable", "Service is not healthy", nil)
				return
			}

			utils.JSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"version": s.Config.App.Version,
			})
		})

		r.Get(constants.VersionPath, func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})

		r.Get("/api/routes", s.GetAPIRoutes)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Authentication routes
		r.Route("/auth", func(r chi.Router) {
			// Public auth endpoints, rate limited per client
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(authLimiter))

				r.Post("/signup", s.Handlers.AuthHandler.Register)
				r.Post("/signin", s.Handlers.AuthHandler.Login)
				r.Post("/social", s.Handlers.AuthHandler.SocialLogin)
				r.Post("/forgot-password", s.Handlers.AuthHandler.ForgotPassword)
				r.Post("/reset-password", s.Handlers.AuthHandler.ResetPassword)
			})

			// Explicitly handle OPTIONS preflight request for /verify endpoint
			r.Options("/verify", handlePreflight(allowedOrigins))

			// Protected auth endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(s.authProviders.JWTService))
				r.Get("/verify", s.Handlers.AuthHandler.VerifyToken)
			})
		})

		// User routes
		r.Route("/users", func(r chi.Router) {
			// Public user endpoints (profiles are readable without auth)
			r.Group(func(r chi.Router) {
				r.Get("/", s.Handlers.UserHandler.ListUsers)
				r.Get("/{userID}", s.Handlers.UserHandler.GetUser)
				r.Get("/{userID}/photo", s.Handlers.UserHandler.GetUserPhoto)
				r.Get("/{userID}/followers", s.Handlers.UserHandler.GetFollowers)
				r.Get("/{userID}/following", s.Handlers.UserHandler.GetFollowing)
			})

			// Protected user endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(s.authProviders.JWTService))

				r.Route("/me", func(r chi.Router) {
					r.Get("/", s.Handlers.UserHandler.GetCurrentUser)
					r.Put("/", s.Handlers.UserHandler.UpdateUser)
					r.Delete("/", s.Handlers.UserHandler.DeleteAccount)
					r.Put("/photo", s.Handlers.UserHandler.UpdateProfilePhoto)
					r.Put("/password", s.Handlers.AuthHandler.ChangePassword)
					r.Put("/follow", s.Handlers.UserHandler.Follow)
					r.Put("/unfollow", s.Handlers.UserHandler.Unfollow)
					r.Get("/suggestions", s.Handlers.UserHandler.GetSuggestions)
				})
			})

			// Admin-only moderation endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(s.authProviders.JWTService))
				r.Use(middleware.RequireRole(constants.RoleAdmin))

				r.Delete("/{userID}", s.Handlers.UserHandler.DeleteUser)
			})
		})

		// Post routes
		r.Route("/posts", func(r chi.Router) {
			// Public post endpoints (posts are readable without auth)
			r.Group(func(r chi.Router) {
				r.Get("/", s.Handlers.PostHandler.ListPosts)
				r.Get("/by/{userID}", s.Handlers.PostHandler.ListPostsByUser)
				r.Get("/{postID}", s.Handlers.PostHandler.GetPost)
				r.Get("/{postID}/photo", s.Handlers.PostHandler.GetPostPhoto)
				r.Get("/{postID}/comments", s.Handlers.PostHandler.ListComments)
			})

			// Protected post endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.JWTAuth(s.authProviders.JWTService))

				r.Post("/", s.Handlers.PostHandler.CreatePost)
				r.Get("/feed", s.Handlers.PostHandler.GetFeed)
				r.Put("/{postID}", s.Handlers.PostHandler.UpdatePost)
				r.Delete("/{postID}", s.Handlers.PostHandler.DeletePost)
				r.Put("/{postID}/photo", s.Handlers.PostHandler.UpdatePostPhoto)
				r.Put("/{postID}/like", s.Handlers.PostHandler.LikePost)
				r.Put("/{postID}/unlike", s.Handlers.PostHandler.UnlikePost)
				r.Post("/{postID}/comments", s.Handlers.PostHandler.AddComment)
				r.Delete("/{postID}/comments/{commentID}", s.Handlers.PostHandler.DeleteComment)
			})
		})
	})

	s.router = r
}

// GetRouter returns the configured router.
//
// Returns:
//   - The chi.Router implementation used by the server
//
// This method is primarily used for testing and for
// integrating the router with other components.
func (s *Server) GetRouter() chi.Router {
	return s.router.(chi.Router)
}

// handlePreflight is an explicit handler for OPTIONS preflight requests.
// It properly configures CORS headers for preflight requests to ensure
// cross-origin requests can proceed if the origin is allowed.
//
// Parameters:
//   - allowedOrigins: A list of origins that are allowed to access the API
//
// Returns:
//   - An http.HandlerFunc that handles the OPTIONS preflight requests
func handlePreflight(allowedOrigins []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				allowed = true
				break
			}
		}

		if allowed {
			w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "300")
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// corsMiddleware creates a custom CORS middleware with the specified allowed origins.
// It handles Cross-Origin Resource Sharing to allow browsers to safely access the API
// from different domains while protecting against unauthorized cross-origin requests.
//
// Parameters:
//   - allowedOrigins: A list of origins that are allowed to access the API
//
// Returns:
//   - A middleware function that adds CORS headers to responses
//
// The middleware checks incoming requests against the allowed origins list,
// adds appropriate CORS headers to responses, and handles OPTIONS preflight
// requests. It supports credentials mode for authenticated cross-origin requests.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			for _, allowedOrigin := range allowedOrigins {
				if allowedOrigin == "*" || allowedOrigin == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Access-Control-Allow-Credentials", "true")

					if r.Method != "OPTIONS" {
						next.ServeHTTP(w, r)
						return
					}

					// Handle OPTIONS preflight requests
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")
					w.Header().Set("Access-Control-Max-Age", "300")

					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			// If origin is not allowed, continue without setting CORS headers
			next.ServeHTTP(w, r)
		})
	}
}

// getAllowedOrigins reads allowed CORS origins from an environment variable or
// falls back to default values. This provides flexibility to configure allowed
// origins without recompiling the application.
//
// Returns:
//   - A slice of strings representing allowed origins for CORS
func getAllowedOrigins() []string {
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")

	if allowedOriginsEnv != "" {
		origins := strings.Split(allowedOriginsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		log.Info().Strs("allowed_origins", origins).Msg("Using CORS allowed origins from environment")
		return origins
	}

	// Include both HTTP and HTTPS for localhost to be safe
	defaultOrigins := []string{"https://openfeed.example", "http://localhost:5173", "https://localhost:5173"}
	log.Info().Strs("allowed_origins", defaultOrigins).Msg("Using default CORS allowed origins")
	return defaultOrigins
}

// GetAPIRoutes returns documentation about all API routes.
// This provides a self-documenting API endpoint that describes all available
// endpoints, their parameters, expected responses, and required authentication.
//
// Parameters:
//   - w: The HTTP response writer
//   - r: The HTTP request
func (s *Server) GetAPIRoutes(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{}

	routes["authentication"] = map[string]interface{}{
		"POST /api/auth/signup": map[string]interface{}{
			"description": "Register a new user",
			"headers": map[string]string{
				"Content-Type": "application/json",
			},
			"body": map[string]interface{}{
				"name":     "string - Display name",
				"email":    "string - Unique email address",
				"password": "string - Password (min 8 characters, mixed character classes)",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"user": map[string]interface{}{
						"id":    1,
						"name":  "John Doe",
						"email": "john@example.com",
						"role":  "subscriber",
					},
					"access_token": "string - JWT access token",
					"token_type":   "Bearer",
					"expires_in":   900,
				},
			},
		},
		"POST /api/auth/signin": map[string]interface{}{
			"description": "Authenticate a user and get an access token",
			"headers": map[string]string{
				"Content-Type": "application/json",
			},
			"body": map[string]interface{}{
				"email":    "string - Email address",
				"password": "string - User's password",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"user":         "object - The authenticated user",
					"access_token": "string - JWT access token",
					"token_type":   "Bearer",
					"expires_in":   900,
				},
			},
		},
		"POST /api/auth/social": map[string]interface{}{
			"description": "Sign in or sign up with a social identity provider",
			"body": map[string]interface{}{
				"email": "string - Email from the identity provider",
				"name":  "string - Display name from the identity provider",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"user":         "object - The authenticated user",
					"access_token": "string - JWT access token",
					"created":      "boolean - Whether a new account was created",
				},
			},
		},
		"POST /api/auth/forgot-password": map[string]interface{}{
			"description": "Request a password reset email",
			"body": map[string]interface{}{
				"email": "string - Email address of the account",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"message": "If the email belongs to an account, a reset link has been sent",
				},
			},
		},
		"POST /api/auth/reset-password": map[string]interface{}{
			"description": "Redeem a password reset token (single use)",
			"body": map[string]interface{}{
				"token":        "string - Reset token from the email",
				"new_password": "string - The new password",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"message": "Password successfully reset",
				},
			},
		},
		"GET /api/auth/verify": map[string]interface{}{
			"description": "Verify current authentication status",
			"headers": map[string]string{
				"Authorization": "Bearer {access_token}",
			},
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"authenticated": true,
					"user_id":       1,
					"email":         "john@example.com",
					"role":          "subscriber",
				},
			},
		},
	}

	routes["users"] = map[string]interface{}{
		"GET /api/users":                      "List users (paginated)",
		"GET /api/users/{userID}":             "Get a user profile",
		"GET /api/users/{userID}/photo":       "Get a user's profile photo",
		"GET /api/users/{userID}/followers":   "List a user's followers",
		"GET /api/users/{userID}/following":   "List users a user follows",
		"GET /api/users/me":                   "Get the current user (requires auth)",
		"PUT /api/users/me":                   "Update the current user (requires auth)",
		"DELETE /api/users/me":                "Delete the current account (requires auth)",
		"PUT /api/users/me/photo":             "Upload a profile photo (requires auth)",
		"PUT /api/users/me/password":          "Change the current password (requires auth)",
		"PUT /api/users/me/follow":            "Follow a user (requires auth)",
		"PUT /api/users/me/unfollow":          "Unfollow a user (requires auth)",
		"GET /api/users/me/suggestions":       "Suggested users to follow (requires auth)",
		"DELETE /api/users/{userID}":          "Delete a user's account (admin only)",
	}

	routes["posts"] = map[string]interface{}{
		"GET /api/posts":                                    "List posts (paginated)",
		"GET /api/posts/by/{userID}":                        "List posts by a specific author",
		"GET /api/posts/{postID}":                           "Get a single post",
		"GET /api/posts/{postID}/photo":                     "Get a post's photo",
		"GET /api/posts/{postID}/comments":                  "List comments on a post",
		"POST /api/posts":                                   "Create a post (requires auth)",
		"GET /api/posts/feed":                               "Personalized feed (requires auth)",
		"PUT /api/posts/{postID}":                           "Update a post (author or admin)",
		"DELETE /api/posts/{postID}":                        "Delete a post (author or admin)",
		"PUT /api/posts/{postID}/photo":                     "Upload a post photo (author or admin)",
		"PUT /api/posts/{postID}/like":                      "Like a post (requires auth)",
		"PUT /api/posts/{postID}/unlike":                    "Remove a like (requires auth)",
		"POST /api/posts/{postID}/comments":                 "Comment on a post (requires auth)",
		"DELETE /api/posts/{postID}/comments/{commentID}":   "Delete a comment (author or admin)",
	}

	routes["system"] = map[string]interface{}{
		"GET /health": map[string]interface{}{
			"description": "Health check endpoint",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"status":  "healthy",
					"version": "1.0.0",
				},
			},
		},
		"GET /version": map[string]interface{}{
			"description": "Get application version",
			"response": map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"version":     "1.0.0",
					"environment": "production",
				},
			},
		},
		"GET /api/routes": map[string]interface{}{
			"description": "Get comprehensive API route documentation",
			"response": map[string]interface{}{
				"success": true,
				"data":    "This document you're viewing right now",
			},
		},
	}

	utils.JSON(w, http.StatusOK, routes)
}
