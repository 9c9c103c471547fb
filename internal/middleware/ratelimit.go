package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// Rate Limiter
// =============================================================================

// RateLimiter counts requests per key in fixed windows.
type RateLimiter struct {
	maxAttempts int
	window      time.Duration
	now         func() time.Time

	mu        sync.Mutex
	entries   map[string]*rateLimitEntry
	lastSweep time.Time
}

type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter creates a limiter allowing maxAttempts per key per window.
func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		entries:     make(map[string]*rateLimitEntry),
	}
}

// Allow reports whether a request for key is within the limit, counting it
// if so. When it is not, the returned duration is the time until the
// window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	entry, ok := rl.entries[key]
	if !ok || now.Sub(entry.windowStart) >= rl.window {
		rl.entries[key] = &rateLimitEntry{count: 1, windowStart: now}
		return true, 0
	}

	if entry.count < rl.maxAttempts {
		entry.count++
		return true, 0
	}
	return false, rl.window - now.Sub(entry.windowStart)
}

// sweep drops expired entries at most once per window. Callers hold mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	for key, entry := range rl.entries {
		if now.Sub(entry.windowStart) >= rl.window {
			delete(rl.entries, key)
		}
	}
	rl.lastSweep = now
}

// =============================================================================
// Rate Limit Middleware
// =============================================================================

// KeyFunc derives the rate limit key of a request.
type KeyFunc func(*http.Request) string

// ByClientIP keys requests by the caller's address.
func ByClientIP(r *http.Request) string {
	return getClientIP(r)
}

// ByPathValue keys requests by a route wildcard, such as the client ID of
// a reminder request, so the limit holds no matter who sends it.
func ByPathValue(name string) KeyFunc {
	return func(r *http.Request) string {
		return r.PathValue(name)
	}
}

// RateLimitMiddleware wraps a rate limiter for use as HTTP middleware.
type RateLimitMiddleware struct {
	limiter *RateLimiter
	key     KeyFunc
	logger  *slog.Logger
}

// NewRateLimitMiddleware creates a new rate limit middleware.
func NewRateLimitMiddleware(limiter *RateLimiter, key KeyFunc, logger *slog.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		key:     key,
		logger:  logger,
	}
}

// Limit returns middleware that answers 429 once a key exceeds its limit.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := m.key(r)
		ok, wait := m.limiter.Allow(key)
		if ok {
			next.ServeHTTP(w, r)
			return
		}

		m.logger.Warn("rate limit exceeded",
			"key", key,
			"path", r.URL.Path,
			"method", r.Method,
		)

		w.Header().Set("Retry-After", retryAfter(wait))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(rateLimitBody{Error: rateLimitError{
			Code:    "rate_limited",
			Message: "Too many requests. Please try again later.",
		}})
	})
}

// rateLimitBody uses the same error envelope as the API handlers.
type rateLimitBody struct {
	Error rateLimitError `json:"error"`
}

type rateLimitError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Helpers
// =============================================================================

// retryAfter renders wait in whole seconds, rounded up so a client that
// honors the header never retries before the window resets.
func retryAfter(wait time.Duration) string {
	return strconv.Itoa(max(int(math.Ceil(wait.Seconds())), 1))
}

// getClientIP extracts the client IP from the request, considering proxy headers.
func getClientIP(r *http.Request) string {
	// The first X-Forwarded-For entry is the original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr might not have a port
		return r.RemoteAddr
	}
	return ip
}
