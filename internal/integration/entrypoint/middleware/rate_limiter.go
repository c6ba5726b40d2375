// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxWrites is the default number of writes allowed per window.
	defaultMaxWrites = 120
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// writeWindow counts the writes of one client in the current window.
type writeWindow struct {
	writes  int
	resetAt time.Time
}

// quota is the outcome of one write against a client's window.
type quota struct {
	allowed    bool
	remaining  int
	retryAfter time.Duration
}

// RateLimiter throttles mutating requests per client IP. Reads are never limited.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*writeWindow
	maxAttempts    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxWrites, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
// A non-positive maxAttempts disables limiting.
func NewRateLimiterWithConfig(maxAttempts int, windowDuration time.Duration) *RateLimiter {
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return &RateLimiter{
		entries:        make(map[string]*writeWindow),
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting
// on POST, PUT, PATCH and DELETE requests. Limited responses carry
// X-RateLimit-Limit and X-RateLimit-Remaining; rejected ones add Retry-After.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.maxAttempts <= 0 || !isWrite(c.Request.Method) {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		q := rl.take(clientIP)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.maxAttempts))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(q.remaining))

		if !q.allowed {
			seconds := int(math.Ceil(q.retryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			slog.Warn("write rate limit exceeded",
				"client_ip", clientIP,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"retry_after_s", seconds,
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many writes. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// take counts one write for key. A window opens on the first write and
// restarts once it has elapsed.
func (rl *RateLimiter) take(key string) quota {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.entries[key]
	if !ok || !now.Before(w.resetAt) {
		w = &writeWindow{resetAt: now.Add(rl.windowDuration)}
		rl.entries[key] = w
	}

	if w.writes >= rl.maxAttempts {
		return quota{retryAfter: w.resetAt.Sub(now)}
	}
	w.writes++
	return quota{allowed: true, remaining: rl.maxAttempts - w.writes}
}

// Reset clears the rate limiter state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*writeWindow)
}

// Cleanup removes expired entries.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.entries {
		if !now.Before(w.resetAt) {
			delete(rl.entries, key)
		}
	}
}

// Start runs Cleanup once per window until ctx is cancelled.
func (rl *RateLimiter) Start(ctx context.Context) {
	ticker := time.NewTicker(rl.windowDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}
