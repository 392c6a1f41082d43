package middleware

import (
	"context"
	"strconv"
	"time"

	"safarexpress/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

var errAuthRateLimited = utils.TooManyRequests("rate_limited", "Too many auth attempts, try again later.")

// AttemptCounter counts hits for a key inside a fixed window.
type AttemptCounter interface {
	// Hit records one attempt and reports whether it is within limit.
	Hit(ctx context.Context, key string) (bool, error)
}

// RedisAttemptCounter shares counts across instances with INCR + EXPIRE.
type RedisAttemptCounter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRedisAttemptCounter(client *redis.Client, limit int, window time.Duration) *RedisAttemptCounter {
	return &RedisAttemptCounter{client: client, limit: int64(limit), window: window}
}

func (r *RedisAttemptCounter) Hit(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().Truncate(r.window).Unix()
	redisKey := "authlimit:" + key + ":" + strconv.FormatInt(windowStart, 10)

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= r.limit, nil
}

// MemoryAttemptCounter is the single-instance fallback.
type MemoryAttemptCounter struct {
	store *rateLimiterStore
}

func NewMemoryAttemptCounter(limit int, window time.Duration) *MemoryAttemptCounter {
	if limit <= 0 {
		limit = 1
	}
	return &MemoryAttemptCounter{store: newRateLimiterStore(window/time.Duration(limit), limit)}
}

func (m *MemoryAttemptCounter) Hit(_ context.Context, key string) (bool, error) {
	return m.store.getLimiter(key).Allow(), nil
}

// NewAttemptCounter picks Redis when a client is available.
func NewAttemptCounter(client *redis.Client, limit int, window time.Duration) AttemptCounter {
	if client != nil {
		return NewRedisAttemptCounter(client, limit, window)
	}
	return NewMemoryAttemptCounter(limit, window)
}

// AuthRateLimit throttles credential endpoints per client IP. Counter
// failures let the request through.
func AuthRateLimit(counter AttemptCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientIP(c)
		ok, err := counter.Hit(c.Request.Context(), ip)
		if err != nil {
			utils.GetLogger().Warn("Auth rate limiter unavailable", zap.Error(err))
		}
		if !ok {
			utils.RespondError(c, errAuthRateLimited)
			return
		}
		c.Next()
	}
}
