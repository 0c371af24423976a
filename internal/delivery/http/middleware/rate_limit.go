package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/apperror"
	"job-portal-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Reject requests when Redis errors instead of falling back to memory
	FailClosed bool
}

// LoginRateLimitConfig limits login attempts per client IP
func LoginRateLimitConfig(perMinute int) RateLimitConfig {
	return RateLimitConfig{
		Limit:      perMinute,
		Window:     time.Minute,
		KeyPrefix:  "rl:login:",
		FailClosed: true,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	}
}

// UploadRateLimitConfig limits uploads per authenticated user, falling back to IP
func UploadRateLimitConfig(perMinute int) RateLimitConfig {
	return RateLimitConfig{
		Limit:     perMinute,
		Window:    time.Minute,
		KeyPrefix: "rl:upload:",
		KeyFunc: func(c *gin.Context) string {
			if id, ok := c.Get(string(domain.KeyUserID)); ok {
				return fmt.Sprintf("user:%v", id)
			}
			return c.ClientIP()
		},
	}
}

// Atomic increment with TTL on first set.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

// RateLimiter counts requests in Redis when a client is given and in
// process memory otherwise.
type RateLimiter struct {
	redis *goredis.Client
	local sync.Map
	now   func() time.Time
}

func NewRateLimiter(client *goredis.Client) *RateLimiter {
	return &RateLimiter{redis: client, now: time.Now}
}

// Middleware enforces config on the wrapped routes
func (l *RateLimiter) Middleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		if config.Limit <= 0 {
			c.Next()
			return
		}
		key := config.KeyPrefix + config.KeyFunc(c)

		count, resetAt, err := l.hit(c.Request.Context(), key, config)
		if err != nil {
			logger.Log.Error("Rate limit store failed", "error", err, "key_prefix", config.KeyPrefix)
			if config.FailClosed {
				response.Error(c, apperror.New(apperror.KindUnavailable, "Service temporarily unavailable. Please try again.", nil))
				c.Abort()
				return
			}
			count, resetAt = l.hitLocal(key, config)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(resetAt.Sub(l.now()).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Rate limit exceeded",
				"path", c.FullPath(), "client_ip", c.ClientIP(), "request_id", c.GetString(response.RequestIDKey))
			response.Error(c, apperror.New(apperror.KindRateLimited, "Rate limit exceeded. Please try again later.", nil))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(config.Limit-count))
		c.Next()
	}
}

func (l *RateLimiter) hit(ctx context.Context, key string, config RateLimitConfig) (int, time.Time, error) {
	if l.redis == nil {
		count, resetAt := l.hitLocal(key, config)
		return count, resetAt, nil
	}

	result, err := l.redis.Eval(ctx, rateLimitLuaScript, []string{key}, int(config.Window.Seconds())).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}
	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	return int(count), l.now().Add(time.Duration(ttl) * time.Second), nil
}

func (l *RateLimiter) hitLocal(key string, config RateLimitConfig) (int, time.Time) {
	now := l.now()
	v, _ := l.local.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(config.Window)})
	entry := v.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(config.Window)
	}
	entry.count++
	return entry.count, entry.resetAt
}

// Cleanup drops expired in-memory entries every interval until ctx is done.
func (l *RateLimiter) Cleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := l.now()
			l.local.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				expired := now.After(entry.resetAt)
				entry.mu.Unlock()
				if expired {
					l.local.Delete(key)
				}
				return true
			})
		}
	}
}
