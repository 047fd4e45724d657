package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/openfeed/openfeed-backend/internal/utils"
	"github.com/openfeed/openfeed-backend/internal/utils/ratelimit"
)

// RateLimiter throttles clients by IP using a per-client token bucket.
// The bucket holds limit tokens and refills over the given window, so a
// client can burst up to limit requests before being throttled.
type RateLimiter struct {
	store      *ratelimit.Store
	retryAfter string
}

// NewRateLimiter creates a rate limiter allowing limit requests per
// client within the given window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rate := ratelimit.Rate{
		RequestsPerSecond: float64(limit) / window.Seconds(),
		Burst:             limit,
	}

	return &RateLimiter{
		store:      ratelimit.NewStore(rate, window),
		retryAfter: strconv.Itoa(int(window.Seconds())),
	}
}

// Allow records a request from the given client and reports whether it
// falls within the configured limit.
func (rl *RateLimiter) Allow(clientIP string) bool {
	return rl.store.GetLimiter(clientIP, "default").Allow()
}

// RateLimit is middleware that rejects clients exceeding the limiter's
// request budget with 429 Too Many Requests.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			if !limiter.Allow(clientIP) {
				log.Warn().
					Str("client_ip", clientIP).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Rate limit exceeded")

				w.Header().Set("Retry-After", limiter.retryAfter)
				utils.Error(w, http.StatusTooManyRequests, "too_many_requests", "Rate limit exceeded. Please try again later.", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP extracts the client IP address from the request,
// taking into account common proxy headers.
func getClientIP(r *http.Request) string {
	xForwardedFor := r.Header.Get("X-Forwarded-For")
	if xForwardedFor != "" {
		// Use the leftmost IP in the list (client IP)
		ips := strings.Split(xForwardedFor, ",")
		return strings.TrimSpace(ips[0])
	}

	xRealIP := r.Header.Get("X-Real-IP")
	if xRealIP != "" {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If there's no port in the address, use it as is
		return r.RemoteAddr
	}
	return ip
}
