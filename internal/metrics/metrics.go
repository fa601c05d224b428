package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks handler latency in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bill_tracker_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// LoginAttempts counts logins by result: success, failure
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bill_tracker_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// RecordsCreated counts inserted rows by entity: user, group, bill
	RecordsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bill_tracker_records_created_total",
			Help: "Total number of records created",
		},
		[]string{"entity"},
	)
)

// RecordHTTPRequest observes one handled request
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementLogin counts a login attempt
func IncrementLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	LoginAttempts.WithLabelValues(result).Inc()
}

// IncrementCreated counts an inserted record
func IncrementCreated(entity string) {
	RecordsCreated.WithLabelValues(entity).Inc()
}
