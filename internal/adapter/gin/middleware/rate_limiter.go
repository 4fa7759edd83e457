package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"user-crud-service/pkg/ratelimit"
)

// RateLimiter returns a Gin middleware that takes one token per request from
// the bucket of {method, route, client IP}. The buckets are shared with the
// gRPC interceptor through Redis.
func RateLimiter(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := c.Request.Method + ":" + route + ":" + c.ClientIP()

		if !limiter.Allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": limiter.Message(),
			})
			return
		}

		c.Next()
	}
}
