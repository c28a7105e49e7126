package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for counter keys
	KeyPrefix string
}

// Counter increments a fixed-window counter and returns the new value
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int, error)
}

// RateLimiter enforces a fixed-window request limit per account
type RateLimiter struct {
	counter Counter
	config  RateLimitConfig
	now     func() time.Time
}

// NewRateLimiter creates a rate limiter backed by Redis
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		counter: &redisCounter{redis: redisClient},
		config:  config,
		now:     time.Now,
	}
}

// NewMemoryRateLimiter creates a rate limiter for a single process
func NewMemoryRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		counter: &memoryCounter{entries: map[string]memoryCount{}, now: time.Now},
		config:  config,
		now:     time.Now,
	}
}

// NewGenerationRateLimiter limits plan generations per account
func NewGenerationRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	config := RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:plan_generation",
	}
	if redisClient == nil {
		return NewMemoryRateLimiter(config)
	}
	return NewRateLimiter(redisClient, config)
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting.
// It must run after AuthMiddleware.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := GetSession(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "user not authenticated", Code: "UNAUTHORIZED"})
			return
		}

		if rl.config.Limit <= 0 {
			c.Next()
			return
		}

		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), sess.Email())
		if err != nil {
			// Log error but don't fail the request
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":                fmt.Sprintf("You have exceeded the rate limit of %d plan generations per %v", rl.config.Limit, rl.config.Window),
				"code":                 "RATE_LIMITED",
				"rate_limit_remaining": remaining,
				"rate_limit_reset":     resetTime.Unix(),
				"retry_after":          int(resetTime.Sub(rl.now()).Seconds()),
			})
			return
		}

		c.Next()
	}
}

// IsAllowed checks if a request from the given subject is allowed
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, subject string) (bool, int, time.Time, error) {
	windowStart := rl.now().Truncate(rl.config.Window)
	key := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, subject, windowStart.Unix())

	count, err := rl.counter.Incr(ctx, key, rl.config.Window)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.config.Window)
	allowed := count <= rl.config.Limit

	return allowed, remaining, resetTime, nil
}

type redisCounter struct {
	redis *redis.Client
}

func (r *redisCounter) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	// Use Redis pipeline for atomic operations
	pipe := r.redis.TxPipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return int(incrCmd.Val()), nil
}

type memoryCount struct {
	count     int
	expiresAt time.Time
}

type memoryCounter struct {
	mu      sync.Mutex
	entries map[string]memoryCount
	now     func() time.Time
}

func (m *memoryCounter) Incr(ctx context.Context, key string, window time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, entry := range m.entries {
		if !now.Before(entry.expiresAt) {
			delete(m.entries, k)
		}
	}

	entry, ok := m.entries[key]
	if !ok {
		entry = memoryCount{expiresAt: now.Add(window)}
	}
	entry.count++
	m.entries[key] = entry
	return entry.count, nil
}
