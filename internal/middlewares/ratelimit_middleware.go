package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"homeschool/internal/apperrors"
)

// RateLimiter implements fixed-window counting in Redis: one counter per
// (bucket, client, window), expired by Redis itself.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// Limit returns a middleware enforcing max requests per window for the
// named bucket. Clients are keyed by user ID when auth has already run
// before the limiter in the chain (the upload buckets), by IP otherwise
// (the standard and auth buckets, which run first). X-RateLimit-*
// headers are set on every response.
func (rl *RateLimiter) Limit(bucket string, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "ratelimit:" + bucket + ":" + clientKey(c)

		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down should not take the API with it.
			c.Next()
			return
		}
		if count == 1 {
			rl.rdb.Expire(ctx, key, window)
		}

		ttl, err := rl.rdb.TTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = window
		}
		reset := time.Now().Add(ttl).Unix()

		remaining := int64(max) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(max))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(reset, 10))

		if count > int64(max) {
			abort(c, apperrors.RateLimited())
			return
		}

		c.Next()
	}
}

func clientKey(c *gin.Context) string {
	if id, ok := CurrentUserID(c); ok {
		return "user:" + id.String()
	}
	return "ip:" + c.ClientIP()
}
