package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/openfeed/openfeed-backend/internal/config"
)

// Create a simplified test config
func createTestConfig() *config.AppConfig {
	return &config.AppConfig{
		App: config.AppSettings{
			Environment: "testing",
			Name:        "OpenFeed Test",
			Version:     "1.0.0-test",
		},
		Server: config.ServerSettings{
			Host:            "localhost",
			Port:            8081,
			ReadTimeout:     1 * time.Second,
			WriteTimeout:    1 * time.Second,
			ShutdownTimeout: 1 * time.Second,
		},
		JWT: config.JWTSettings{
			Secret:      "test-secret",
			Expiry:      15 * time.Minute,
			ResetExpiry: 1 * time.Hour,
			Issuer:      "test-issuer",
		},
		Database: config.DatabaseSettings{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
		PasswordHash: config.HashSettings{
			Memory:      64 * 1024,
			Iterations:  3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Email: config.EmailSettings{
			SendGridAPIKey: "test-api-key",
			FromAddress:    "noreply@openfeed.example",
			FromName:       "OpenFeed",
			ResetURLBase:   "https://openfeed.example/reset-password",
		},
	}
}

func TestServerCreation(t *testing.T) {
	// This test can't use the actual NewServer function because it would try
	// to connect to a real database. Instead, we create a mock setup.
	cfg := createTestConfig()
	server := &Server{
		Config: cfg,
		router: chi.NewRouter(),
	}

	// Manually set up the HTTP server as NewServer would
	server.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Verify the server is configured correctly
	assert.Equal(t, cfg, server.Config)
	assert.NotNil(t, server.router)
	assert.NotNil(t, server.httpServer)
	assert.Equal(t, cfg.Server.ServerAddress(), server.httpServer.Addr)
}

func TestServerAddress(t *testing.T) {
	ss := &config.ServerSettings{
		Host: "localhost",
		Port: 8080,
	}

	address := ss.ServerAddress()
	assert.Equal(t, "localhost:8080", address)
}

func TestGetAllowedOrigins(t *testing.T) {
	// Save original value
	origValue := os.Getenv("ALLOWED_ORIGINS")
	defer os.Setenv("ALLOWED_ORIGINS", origValue)

	// Test getting origins from environment
	os.Setenv("ALLOWED_ORIGINS", "http://test1.com, http://test2.com")
	origins := getAllowedOrigins()
	assert.Equal(t, 2, len(origins))
	assert.Equal(t, "http://test1.com", origins[0])
	assert.Equal(t, "http://test2.com", origins[1])

	// Test default origins
	os.Unsetenv("ALLOWED_ORIGINS")
	origins = getAllowedOrigins()
	assert.Equal(t, 3, len(origins))
	assert.Contains(t, origins, "https://openfeed.example")
	assert.Contains(t, origins, "http://localhost:5173")
	assert.Contains(t, origins, "https://localhost:5173")
}

func TestCorsMiddleware(t *testing.T) {
	allowedOrigins := []string{"http://example.com", "*"}
	middleware := corsMiddleware(allowedOrigins)

	// Create a test handler
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware(testHandler)

	// Test normal request
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Result().StatusCode)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))

	// Test OPTIONS request
	req = httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	w = httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Result().StatusCode)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
}

func TestHandlePreflight(t *testing.T) {
	allowedOrigins := []string{"http://example.com", "*"}
	handler := handlePreflight(allowedOrigins)

	// Test with allowed origin
	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Result().StatusCode)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGetAPIRoutes(t *testing.T) {
	server := &Server{
		Config: createTestConfig(),
	}

	req := httptest.NewRequest("GET", "/api/routes", nil)
	w := httptest.NewRecorder()

	server.GetAPIRoutes(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	// Check that the response contains the expected sections
	body := w.Body.String()
	assert.Contains(t, body, "authentication")
	assert.Contains(t, body, "users")
	assert.Contains(t, body, "posts")
	assert.Contains(t, body, "system")
}
