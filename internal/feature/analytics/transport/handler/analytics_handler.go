// Package handler provides the HTTP handlers of the analytics feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"dataset_analytics/internal/feature/analytics/domain/entity"
	"dataset_analytics/internal/feature/analytics/transport/http/dto"
)

// AnalyticsUsecase computes a ResultSet for a metric.
// Following Go convention, the interface is defined by the consumer (handler).
type AnalyticsUsecase interface {
	Compute(ctx context.Context, metric entity.Metric) (entity.ResultSet, error)
}

// AnalyticsHandler serves the per-partition statistics routes.
type AnalyticsHandler struct {
	uc         AnalyticsUsecase
	presenters map[OutputMode]Presenter
}

// NewAnalyticsHandler creates an AnalyticsHandler that renders images with renderer.
func NewAnalyticsHandler(uc AnalyticsUsecase, renderer ChartRenderer) *AnalyticsHandler {
	return &AnalyticsHandler{
		uc: uc,
		presenters: map[OutputMode]Presenter{
			OutputJSON:  JSONPresenter{},
			OutputImage: NewImagePresenter(renderer),
		},
	}
}

// Serve returns a handler that computes metric and presents it according to show.
//
// Example:
// GET /ma180?show=json
func (h *AnalyticsHandler) Serve(metric entity.Metric) gin.HandlerFunc {
	return func(c *gin.Context) {
		show := c.Query("show")
		mode, ok := ParseOutputMode(show)
		if !ok {
			slog.Warn("unknown show value, using default", "show", show, "default", mode.String(), "path", c.FullPath())
		}

		rs, err := h.uc.Compute(c.Request.Context(), metric)
		if err != nil {
			slog.Error("analytics computation failed", "metric", metric, "error", err)
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to compute " + string(metric)})
			return
		}

		h.presenters[mode].Present(c, rs)
	}
}
