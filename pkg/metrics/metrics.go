package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "job_portal"

var (
	// RequestCounter counts all HTTP requests with labels
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration records request duration in seconds
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// FileUploads counts upload attempts by file kind and outcome
	FileUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_uploads_total",
			Help:      "Total number of file uploads by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	// FileUploadBytes sums the bytes written to the upload directory
	FileUploadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "file_upload_bytes_total",
			Help:      "Total bytes stored by kind",
		},
		[]string{"kind"},
	)

	// AuthAttempts counts login attempts by outcome
	AuthAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_attempts_total",
			Help:      "Total number of login attempts by outcome",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter, RequestDuration, FileUploads, FileUploadBytes, AuthAttempts)
}

// RecordUpload increments the upload counter for kind ("resume", "profile_picture")
func RecordUpload(kind, outcome string, bytes int64) {
	FileUploads.WithLabelValues(kind, outcome).Inc()
	if bytes > 0 {
		FileUploadBytes.WithLabelValues(kind).Add(float64(bytes))
	}
}

// RecordLogin increments the login counter
func RecordLogin(outcome string) {
	AuthAttempts.WithLabelValues(outcome).Inc()
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
