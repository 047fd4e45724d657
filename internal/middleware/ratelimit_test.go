package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openfeed/openfeed-backend/internal/middleware"
)

func TestRateLimiterAllow(t *testing.T) {
	limiter := middleware.NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}

	if limiter.Allow("10.0.0.1") {
		t.Error("Fourth request within the window should be rejected")
	}

	// Another client has its own budget
	if !limiter.Allow("10.0.0.2") {
		t.Error("Requests from a different client should be allowed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Minute)
	mockHandler := &MockHandler{StatusCode: http.StatusOK}
	handler := middleware.RateLimit(limiter)(mockHandler)

	send := func() *httptest.ResponseRecorder {
		req, err := http.NewRequest("POST", "/api/auth/signin", nil)
		if err != nil {
			t.Fatalf("Failed to create request: %v", err)
		}
		req.RemoteAddr = "192.168.1.1:1234"

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 2; i++ {
		if rr := send(); rr.Code != http.StatusOK {
			t.Fatalf("Request %d returned status %d, want %d", i+1, rr.Code, http.StatusOK)
		}
	}

	rr := send()
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("Over-limit request returned status %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("Expected a Retry-After header on the throttled response")
	}
}

func TestRateLimitClientIPFromForwardedHeader(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Minute)
	mockHandler := &MockHandler{StatusCode: http.StatusOK}
	handler := middleware.RateLimit(limiter)(mockHandler)

	send := func(forwardedFor string) *httptest.ResponseRecorder {
		req, err := http.NewRequest("POST", "/api/auth/signin", nil)
		if err != nil {
			t.Fatalf("Failed to create request: %v", err)
		}
		req.RemoteAddr = "10.0.0.5:9999"
		if forwardedFor != "" {
			req.Header.Set("X-Forwarded-For", forwardedFor)
		}

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr
	}

	if rr := send("203.0.113.7, 10.0.0.5"); rr.Code != http.StatusOK {
		t.Fatalf("First request returned status %d, want %d", rr.Code, http.StatusOK)
	}

	// Same forwarded client is throttled even through the same proxy
	if rr := send("203.0.113.7, 10.0.0.5"); rr.Code != http.StatusTooManyRequests {
		t.Errorf("Repeat request returned status %d, want %d", rr.Code, http.StatusTooManyRequests)
	}

	// A different forwarded client still gets through
	if rr := send("203.0.113.8, 10.0.0.5"); rr.Code != http.StatusOK {
		t.Errorf("Different client returned status %d, want %d", rr.Code, http.StatusOK)
	}
}
