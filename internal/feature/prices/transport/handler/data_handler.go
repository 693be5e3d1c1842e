// Package handler provides the HTTP handlers of the prices feature.
package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dataset_analytics/internal/feature/prices/domain/entity"
	"dataset_analytics/internal/feature/prices/transport/http/dto"
)

// DataHandler serves the raw dataset.
type DataHandler struct {
	ds *entity.Dataset
}

// NewDataHandler creates a DataHandler over the loaded dataset.
func NewDataHandler(ds *entity.Dataset) *DataHandler {
	return &DataHandler{ds: ds}
}

// Index renders a small landing page.
func (h *DataHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, IndexTemplate, gin.H{"Symbol": h.ds.Symbol})
}

// Data renders the dataset as an HTML table.
//
// Example:
// GET /data?rows=100
func (h *DataHandler) Data(c *gin.Context) {
	var q dto.DataQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		slog.Warn("invalid data query", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid `rows` parameter; must be a non-negative integer"})
		return
	}

	records := h.ds.Records
	if q.Rows != nil && *q.Rows < len(records) {
		records = records[:*q.Rows]
	}

	rows := make([]dto.PriceRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, dto.PriceRow{
			Date:   r.Date.Format(time.DateOnly),
			Open:   formatPrice(r.Open),
			High:   formatPrice(r.High),
			Low:    formatPrice(r.Low),
			Close:  formatPrice(r.Close),
			Volume: strconv.FormatInt(r.Volume, 10),
		})
	}

	c.HTML(http.StatusOK, DataTemplate, gin.H{
		"Source": h.ds.Source,
		"Total":  h.ds.Len(),
		"Rows":   rows,
	})
}

// formatPrice prints v without exponent notation, e.g. 1000000 rather than 1e+06.
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
