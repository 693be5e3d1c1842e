// Package handler provides HTTP handlers for platform-level endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RecordCounter reports how many records the service has loaded.
type RecordCounter interface {
	Len() int
}

// HealthHandler serves /healthz.
type HealthHandler struct {
	data RecordCounter
}

// NewHealthHandler creates a HealthHandler reporting on data.
func NewHealthHandler(data RecordCounter) *HealthHandler {
	return &HealthHandler{data: data}
}

// Health handles the /healthz endpoint.
// It answers according to the HTTP method and prevents caching.
func (h *HealthHandler) Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		n := 0
		if h.data != nil {
			n = h.data.Len()
		}
		if n == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "no data", "records": 0})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "records": n})
	}
}
