package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver receives the outcome of every request.
type RequestObserver interface {
	ObserveRequest(route, method string, status int, d time.Duration)
}

// AccessLog logs each request with slog and reports it to obs, if not nil.
// Requests slower than slow are logged as warnings; 5xx responses as errors.
func AccessLog(obs RequestObserver, slow time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		if obs != nil {
			obs.ObserveRequest(route, c.Request.Method, status, latency)
		}

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", latency,
			"bytes", c.Writer.Size(),
			"remote_addr", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey),
		}
		switch {
		case status >= 500:
			slog.Error("http request failed", attrs...)
		case slow > 0 && latency >= slow:
			slog.Warn("http request slow", attrs...)
		default:
			slog.Info("http request", attrs...)
		}
	}
}
