package mw

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"saassyadmin/internal/server/resp"
)

const (
	rateLimitKeyPrefix = "ratelimit:"
	rateLimitWindow    = time.Second
)

// RateLimit caps requests per second per client IP with a Redis counter.
// A limit of zero or less disables it.
func RateLimit(rdb *redis.Client, limitPerSec int, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limitPerSec <= 0 || rdb == nil {
			c.Next()
			return
		}
		key := rateLimitKeyPrefix + c.ClientIP()
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, rateLimitWindow)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Error("rate limit counter failed", zap.Error(err))
			resp.Abort(c, http.StatusServiceUnavailable, "service unavailable")
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limitPerSec))
		if incr.Val() > int64(limitPerSec) {
			c.Header("Retry-After", "1")
			resp.Abort(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		c.Next()
	}
}
