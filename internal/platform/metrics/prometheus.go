// Package metrics exposes Prometheus instrumentation for HTTP traffic and analytics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the service's Prometheus collectors.
type Recorder struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	computeDuration *prometheus.HistogramVec
	computeErrors   *prometheus.CounterVec
	datasetRecords  *prometheus.GaugeVec
}

// NewRecorder registers the collectors on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"route", "method", "class"},
		),
		computeDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analytics_compute_duration_seconds",
				Help:    "Duration of analytics computations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"metric"},
		),
		computeErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analytics_compute_errors_total",
				Help: "Total number of failed analytics computations",
			},
			[]string{"metric"},
		),
		datasetRecords: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dataset_records",
				Help: "Number of price records per partition",
			},
			[]string{"partition"},
		),
	}
}

// ObserveRequest records one served HTTP request.
func (r *Recorder) ObserveRequest(route, method string, status int, d time.Duration) {
	r.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.requestDuration.WithLabelValues(route, method, statusClass(status)).Observe(d.Seconds())
}

// ObserveCompute records one analytics computation.
func (r *Recorder) ObserveCompute(metric string, d time.Duration, err error) {
	r.computeDuration.WithLabelValues(metric).Observe(d.Seconds())
	if err != nil {
		r.computeErrors.WithLabelValues(metric).Inc()
	}
}

// SetPartitionSize records the number of records in a partition.
func (r *Recorder) SetPartitionSize(partition string, n int) {
	r.datasetRecords.WithLabelValues(partition).Set(float64(n))
}

func statusClass(code int) string {
	switch {
	case code >= 100 && code < 200:
		return "1xx"
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
