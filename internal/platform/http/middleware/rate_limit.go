package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mealscan_backend/internal/platform/http/response"
	"mealscan_backend/internal/shared/ratelimiter"
)

// RateLimit throttles requests per client IP and route.
// A nil limiter disables throttling.
func RateLimit(limiter ratelimiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := c.ClientIP() + ":" + c.FullPath()
		if !limiter.Allow(key) {
			c.Header("Retry-After", "1")
			response.Error(c, http.StatusTooManyRequests, "too many requests, please try again later")
			return
		}
		c.Next()
	}
}
