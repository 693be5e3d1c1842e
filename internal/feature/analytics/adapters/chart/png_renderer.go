// Package chart renders analytics result sets as raster images.
package chart

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"dataset_analytics/internal/feature/analytics/domain/entity"
)

const (
	defaultWidth  = 12 * vg.Inch
	defaultHeight = 5 * vg.Inch
)

// PNGRenderer draws one line per partition on a shared time axis.
type PNGRenderer struct {
	width  vg.Length
	height vg.Length
	symbol string
}

// NewPNGRenderer creates a PNGRenderer. Zero sizes fall back to 12x5 inches.
func NewPNGRenderer(symbol string, width, height vg.Length) *PNGRenderer {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &PNGRenderer{width: width, height: height, symbol: symbol}
}

// ContentType is the MIME type of the rendered image.
func (r *PNGRenderer) ContentType() string {
	return "image/png"
}

// Render draws rs and returns the encoded PNG.
func (r *PNGRenderer) Render(rs entity.ResultSet) ([]byte, error) {
	p := plot.New()
	p.Title.Text = rs.Metric.Title()
	if r.symbol != "" {
		p.Title.Text = r.symbol + ": " + p.Title.Text
	}
	p.X.Label.Text = "Date"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01"}
	p.Y.Label.Text = rs.Metric.Title()
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	for i, s := range rs.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j].X = float64(pt.Date.Unix())
			xys[j].Y = pt.Value
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("%s series: %w", s.Partition, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.Partition, line)
	}

	wt, err := p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return nil, fmt.Errorf("create png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
