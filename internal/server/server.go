// Package server provides the HTTP server implementation for the OpenFeed API.
// It handles routing, middleware configuration, and server lifecycle management.
//
// The server follows a structured initialization approach with dependency
// injection and proper lifecycle management: database, auth providers,
// repositories, services, handlers, routes. It supports graceful shutdown
// with a configurable timeout.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/auth"
	"github.com/openfeed/openfeed-backend/internal/config"
	"github.com/openfeed/openfeed-backend/internal/constants"
	"github.com/openfeed/openfeed-backend/internal/database"
	"github.com/openfeed/openfeed-backend/internal/handlers"
	"github.com/openfeed/openfeed-backend/internal/repository"
	"github.com/openfeed/openfeed-backend/internal/service"
	"github.com/openfeed/openfeed-backend/migrations"
	"github.com/openfeed/openfeed-backend/scripts"
)

// Handlers contains all HTTP handlers for the application.
// It centralizes handler management for consistent request processing
// and simplifies dependency injection throughout the application.
type Handlers struct {
	// AuthHandler manages authentication-related endpoints
	AuthHandler *handlers.AuthHandler

	// UserHandler manages user profile, photo and follow endpoints
	UserHandler *handlers.UserHandler

	// PostHandler manages post, like and comment endpoints
	PostHandler *handlers.PostHandler
}

// AuthProviders contains all authentication providers for the application.
// This structure encapsulates authentication-related dependencies
// to simplify initialization and testing.
type AuthProviders struct {
	// JWTService handles JWT token generation and validation
	JWTService *auth.JWTService

	// PasswordCfg contains password hashing and validation configuration
	PasswordCfg *auth.PasswordConfig
}

// Server represents the OpenFeed API server.
// It encapsulates all server components and handles server lifecycle
// management, including initialization, startup, and graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// authProviders contains authentication services
	authProviders *AuthProviders

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// repositories holds all repositories used by the server.
var repositories struct {
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
}

// services holds all services used by the server.
var services struct {
	authService *service.AuthService
	userService *service.UserService
	postService *service.PostService
}

// NewServer creates a new server instance with all required components.
// It connects to the database, runs migrations, initializes authentication
// providers, repositories, services, and handlers, then sets up the routes.
//
// Parameters:
//   - cfg: Application configuration including database, server, and auth settings
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if initialization of any component fails
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := s.setupAuthProviders(); err != nil {
		return nil, fmt.Errorf("failed to set up auth providers: %w", err)
	}

	if err := s.setupRepositories(); err != nil {
		return nil, fmt.Errorf("failed to set up repositories: %w", err)
	}

	if err := s.setupServices(); err != nil {
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}

	if err := s.setupHandlers(); err != nil {
		return nil, fmt.Errorf("failed to set up handlers: %w", err)
	}

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupDatabase connects to the database, runs migrations, and seeds
// initial data when the database is empty.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}

	s.Db = db

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seeder := scripts.NewSeeder(db)
	if err := seeder.SeedDatabase(context.Background()); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return nil
}

// setupAuthProviders initializes JWT token management and password
// hashing configuration.
func (s *Server) setupAuthProviders() error {
	jwtService := auth.NewJWTService(&s.Config.JWT)
	passwordCfg := auth.ConfigFromAppConfig(s.Config)

	s.authProviders = &AuthProviders{
		JWTService:  jwtService,
		PasswordCfg: passwordCfg,
	}

	return nil
}

// setupRepositories initializes all data repositories.
func (s *Server) setupRepositories() error {
	repositories.userRepo = repository.NewUserRepository(s.Db)
	repositories.followRepo = repository.NewFollowRepository(s.Db)
	repositories.postRepo = repository.NewPostRepository(s.Db)
	repositories.commentRepo = repository.NewCommentRepository(s.Db)

	return nil
}

// setupServices initializes all business services.
// It creates service instances using the previously initialized repositories.
//
// Returns:
//   - An error if service initialization fails or required dependencies are missing
func (s *Server) setupServices() error {
	if s.authProviders == nil || s.authProviders.JWTService == nil {
		return fmt.Errorf("JWT service not initialized")
	}
	if s.authProviders.PasswordCfg == nil {
		return fmt.Errorf("password config not initialized")
	}

	emailService, err := service.NewEmailService(&s.Config.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	services.authService = service.NewAuthService(
		repositories.userRepo,
		s.authProviders.JWTService,
		s.authProviders.PasswordCfg,
		emailService,
	)

	services.userService = service.NewUserService(
		repositories.userRepo,
		repositories.followRepo,
	)

	services.postService = service.NewPostService(
		repositories.postRepo,
		repositories.commentRepo,
	)

	return nil
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() error {
	s.Handlers = &Handlers{
		AuthHandler: handlers.NewAuthHandler(services.authService, s.authProviders.JWTService),
		UserHandler: handlers.NewUserHandler(services.userService),
		PostHandler: handlers.NewPostHandler(services.postService),
	}

	if s.Handlers.AuthHandler == nil {
		return fmt.Errorf("failed to initialize AuthHandler")
	}

	return nil
}

// Start starts the HTTP server and sets up signal handling for graceful shutdown.
// It runs in a blocking mode, waiting for either server errors or shutdown signals.
//
// Returns:
//   - An error if the server fails to start or encounters an error during operation
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, closing all connections properly.
// It ensures in-flight requests are completed before shutting down.
//
// Parameters:
//   - ctx: Context with timeout for the shutdown operation
//
// Returns:
//   - An error if shutdown fails within the context timeout
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	s.Db.Close()
	log.Info().Msg("Database connection closed")

	return nil
}
