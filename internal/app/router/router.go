// Package router wires every HTTP route of the service.
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dataset_analytics/internal/feature/analytics/domain/entity"
	analyticshandler "dataset_analytics/internal/feature/analytics/transport/handler"
	priceshandler "dataset_analytics/internal/feature/prices/transport/handler"
	platformhandler "dataset_analytics/internal/platform/http/handler"
	"dataset_analytics/internal/platform/http/middleware"
)

// slowRequest is the latency above which requests are logged as warnings.
const slowRequest = 2 * time.Second

// Handlers groups the feature handlers served by the router.
type Handlers struct {
	Data      *priceshandler.DataHandler
	Analytics *analyticshandler.AnalyticsHandler
	Health    *platformhandler.HealthHandler
	// Limiter throttles the analytics routes when set.
	Limiter middleware.Limiter
}

// NewRouter builds the gin engine. obs and gatherer may be nil to disable metrics.
func NewRouter(h Handlers, obs middleware.RequestObserver, gatherer prometheus.Gatherer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(obs, slowRequest))
	r.SetHTMLTemplate(priceshandler.Templates())

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	// /health is kept for existing clients.
	r.GET("/health", h.Health.Health)
	r.HEAD("/health", h.Health.Health)
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/", h.Data.Index)
	r.GET("/data", h.Data.Data)

	// The quarterly-returns route keeps its historical name.
	analytics := r.Group("/", middleware.RateLimit(h.Limiter))
	analytics.GET("/dividends", h.Analytics.Serve(entity.MetricQuarterlyReturns))
	analytics.GET("/ma180", h.Analytics.Serve(entity.MetricMA180))
	analytics.GET("/vol180", h.Analytics.Serve(entity.MetricVol180))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}
