package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"dataset_analytics/internal/feature/analytics/domain/entity"
	"dataset_analytics/internal/feature/analytics/transport/http/dto"
)

// OutputMode selects how a ResultSet is written to the client.
type OutputMode int

const (
	// OutputImage renders a comparison chart.
	OutputImage OutputMode = iota
	// OutputJSON serializes the series.
	OutputJSON
)

// DefaultOutputMode is used when show is absent or unrecognized.
const DefaultOutputMode = OutputImage

func (m OutputMode) String() string {
	switch m {
	case OutputJSON:
		return "json"
	default:
		return "image"
	}
}

// ParseOutputMode maps the show query value to an OutputMode.
// ok is false when s is not empty and not a known mode; the default mode is returned then.
func ParseOutputMode(s string) (mode OutputMode, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultOutputMode, true
	case "json":
		return OutputJSON, true
	case "image", "png":
		return OutputImage, true
	default:
		return DefaultOutputMode, false
	}
}

// Presenter writes a ResultSet as an HTTP response.
type Presenter interface {
	Present(c *gin.Context, rs entity.ResultSet)
}

// ChartRenderer turns a ResultSet into an encoded image.
type ChartRenderer interface {
	Render(rs entity.ResultSet) ([]byte, error)
	ContentType() string
}

// JSONPresenter serializes a ResultSet as a SeriesResponse.
type JSONPresenter struct{}

// Present writes rs as JSON.
func (JSONPresenter) Present(c *gin.Context, rs entity.ResultSet) {
	c.JSON(http.StatusOK, ToSeriesResponse(rs))
}

// ToSeriesResponse converts rs into its JSON shape.
func ToSeriesResponse(rs entity.ResultSet) dto.SeriesResponse {
	out := dto.SeriesResponse{
		Metric:     string(rs.Metric),
		Order:      make([]string, 0, len(rs.Series)),
		Partitions: make(map[string][]dto.PointResponse, len(rs.Series)),
	}
	for _, s := range rs.Series {
		pts := make([]dto.PointResponse, 0, len(s.Points))
		for _, p := range s.Points {
			pts = append(pts, dto.PointResponse{
				Date:   p.Date.UTC().Format(time.DateOnly),
				Period: p.Period,
				Value:  p.Value,
			})
		}
		out.Order = append(out.Order, s.Partition)
		out.Partitions[s.Partition] = pts
	}
	return out
}

// ImagePresenter renders a ResultSet as a chart image.
type ImagePresenter struct {
	renderer ChartRenderer
}

// NewImagePresenter creates an ImagePresenter backed by renderer.
func NewImagePresenter(renderer ChartRenderer) *ImagePresenter {
	return &ImagePresenter{renderer: renderer}
}

// Present renders rs and writes the image bytes.
func (p *ImagePresenter) Present(c *gin.Context, rs entity.ResultSet) {
	img, err := p.renderer.Render(rs)
	if err != nil {
		slog.Error("chart rendering failed", "metric", rs.Metric, "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to render chart"})
		return
	}
	c.Data(http.StatusOK, p.renderer.ContentType(), img)
}
