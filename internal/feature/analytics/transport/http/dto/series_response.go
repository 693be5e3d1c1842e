// Package dto defines the HTTP request and response shapes of the analytics feature.
package dto

// PointResponse is one value of a derived series.
type PointResponse struct {
	Date   string  `json:"date"`             // Anchor trading day (YYYY-MM-DD)
	Period string  `json:"period,omitempty"` // Resampling period, e.g. "2004Q3"
	Value  float64 `json:"value"`
}

// SeriesResponse maps each partition label to its ordered points.
type SeriesResponse struct {
	Metric     string                     `json:"metric"`
	Order      []string                   `json:"order"` // Partition labels, oldest first
	Partitions map[string][]PointResponse `json:"partitions"`
}

// ErrorResponse is the JSON body returned on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
