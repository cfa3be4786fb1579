package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemkits/backend/internal/interfaces/http/dto"
)

// RateLimiter is an in-memory fixed-window limiter keyed by client
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitEntry
	limit   int
	window  time.Duration
}

type rateLimitEntry struct {
	tokens    int
	lastReset time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per window.
// A background goroutine evicts idle clients.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		clients: make(map[string]*rateLimitEntry),
		limit:   limit,
		window:  window,
	}
	go rl.evictLoop()
	return rl
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.window * 2)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, e := range rl.clients {
			if now.Sub(e.lastReset) > rl.window*2 {
				delete(rl.clients, key)
			}
		}
		rl.mu.Unlock()
	}
}

// Allow reports whether a request from key is within the limit
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	e, ok := rl.clients[key]
	if !ok {
		rl.clients[key] = &rateLimitEntry{tokens: rl.limit - 1, lastReset: now}
		return true
	}

	if now.Sub(e.lastReset) >= rl.window {
		e.tokens = rl.limit - 1
		e.lastReset = now
		return true
	}

	if e.tokens > 0 {
		e.tokens--
		return true
	}
	return false
}

// Remaining returns the remaining requests for key in the current window
func (rl *RateLimiter) Remaining(key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	e, ok := rl.clients[key]
	if !ok || time.Since(e.lastReset) >= rl.window {
		return rl.limit
	}
	return e.tokens
}

// RateLimit limits requests per client IP
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(dto.ErrCodeTooManyRequests, "Too many requests. Please try again later."))
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))

		c.Next()
	}
}
