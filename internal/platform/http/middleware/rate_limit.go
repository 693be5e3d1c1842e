package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter decides whether a request may proceed.
type Limiter interface {
	Allow() (bool, time.Duration)
}

// RateLimit rejects requests with 429 once l is exhausted. A nil l allows everything.
func RateLimit(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		ok, wait := l.Allow()
		if !ok {
			secs := int(math.Ceil(wait.Seconds()))
			if secs < 1 {
				secs = 1
			}
			slog.Warn("rate limit exceeded", "path", c.Request.URL.Path, "retry_after", secs, "request_id", c.GetString(RequestIDKey))
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
