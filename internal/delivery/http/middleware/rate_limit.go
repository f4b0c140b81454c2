package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"

	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for Redis
	KeyPrefix string
}

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key, ARGV[1] = TTL in seconds.
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

var (
	rateLimitStore sync.Map
	cleanupOnce    sync.Once
)

// startCleanup runs a background goroutine to evict expired fallback entries
func startCleanup() {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		for range ticker.C {
			now := time.Now()
			rateLimitStore.Range(func(key, value interface{}) bool {
				entry := value.(*rateLimitEntry)
				entry.mu.Lock()
				if now.After(entry.resetAt) {
					rateLimitStore.Delete(key)
				}
				entry.mu.Unlock()
				return true
			})
		}
	}()
}

// RateLimit limits mutating requests per authenticated user (falling back
// to client IP for anonymous traffic). Counters live in Redis so limits
// hold across instances; without Redis an in-memory store serves as a
// best-effort fallback.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	cleanupOnce.Do(startCleanup)

	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:"
	}

	return func(c *gin.Context) {
		key := c.GetString(string(domain.KeyUserID))
		if key == "" {
			key = c.ClientIP()
		}
		key = cfg.KeyPrefix + key

		var count int
		var retryAfter time.Duration

		if rdb := redis.Client(); rdb != nil {
			res, err := rdb.Eval(c.Request.Context(), rateLimitLuaScript,
				[]string{key}, int(cfg.Window.Seconds())).Result()
			if err != nil {
				// Redis hiccup: fail open, a stuck limiter must not take
				// the API down with it
				logger.Log.Warn("rate limiter redis error", "error", err)
				c.Next()
				return
			}
			vals := res.([]interface{})
			count = int(vals[0].(int64))
			retryAfter = time.Duration(vals[1].(int64)) * time.Second
		} else {
			count, retryAfter = incrInMemory(key, cfg.Window)
		}

		if count > cfg.Limit {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.")
			c.Abort()
			return
		}

		c.Next()
	}
}

func incrInMemory(key string, window time.Duration) (int, time.Duration) {
	now := time.Now()
	val, _ := rateLimitStore.LoadOrStore(key, &rateLimitEntry{resetAt: now.Add(window)})
	entry := val.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(window)
	}
	entry.count++
	return entry.count, time.Until(entry.resetAt)
}
