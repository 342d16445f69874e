package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mealscan_backend/internal/platform/http/response"
)

// BodyLimit caps request bodies at maxBytes. Requests that declare a larger
// Content-Length are rejected with 413 up front; bodies without a length are
// cut off while being read, which surfaces as a bind error in the handler.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.Error(c, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
