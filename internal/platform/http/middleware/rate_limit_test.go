package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"dataset_analytics/internal/platform/http/middleware"
	"dataset_analytics/internal/shared/ratelimiter"
)

type stubLimiter struct {
	ok   bool
	wait time.Duration
}

func (s stubLimiter) Allow() (bool, time.Duration) { return s.ok, s.wait }

func rateLimitedRouter(l middleware.Limiter) *gin.Engine {
	r := gin.New()
	r.GET("/ma180", middleware.RateLimit(l), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		limiter    middleware.Limiter
		wantStatus int
		wantRetry  string
	}{
		{"nil limiter allows", nil, http.StatusOK, ""},
		{"allowed", stubLimiter{ok: true}, http.StatusOK, ""},
		{"rejected rounds up", stubLimiter{ok: false, wait: 1500 * time.Millisecond}, http.StatusTooManyRequests, "2"},
		{"rejected at least one second", stubLimiter{ok: false}, http.StatusTooManyRequests, "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			rateLimitedRouter(tt.limiter).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ma180", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantRetry, w.Header().Get("Retry-After"))
			if tt.wantStatus == http.StatusTooManyRequests {
				assert.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())
			}
		})
	}
}

func TestRateLimit_WithRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := rateLimitedRouter(ratelimiter.NewRateLimiter(1, time.Hour))

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ma180", nil))
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ma180", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
