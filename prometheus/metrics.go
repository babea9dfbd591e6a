package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Entity operation counters by collection and operation
	EntityOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_admin_entity_operations_total",
			Help: "Total number of entity operations by collection",
		},
		[]string{"collection", "operation"}, // operation can be "list", "create", "update", "delete"
	)

	// Authentication error counter
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_admin_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // type can be "missing_token", "invalid_token", "not_superadmin" etc.
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_admin_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"method", "path", "status"},
	)

	// Client request counter, recorded by the admin API client
	ClientRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "platform_admin_client_requests_total",
			Help: "Total number of admin API client requests by collection and outcome",
		},
		[]string{"collection", "method", "outcome"}, // outcome is "success", "error" or "rejected"
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "platform_admin_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "platform_admin_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "platform_admin_info",
			Help: "Information about the platform-admin service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(EntityOperationCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(ClientRequestCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// RecordEntityOperation increments the operation counter for a collection
func RecordEntityOperation(collection, operation string) {
	EntityOperationCounter.WithLabelValues(collection, operation).Inc()
}

// RecordAuthError increments the auth error counter for a given error type
func RecordAuthError(errorType string) {
	AuthErrorCounter.WithLabelValues(errorType).Inc()
}

// RecordClientRequest increments the client-side request counter
func RecordClientRequest(collection, method, outcome string) {
	ClientRequestCounter.WithLabelValues(collection, method, outcome).Inc()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			// Execute the request handler
			err := next(c)

			// Record metrics after the request is processed
			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			method := c.Request().Method
			path := c.Path()

			HTTPRequestCounter.WithLabelValues(method, path, status).Inc()
			RequestDuration.WithLabelValues(method, path, status).Observe(duration)

			return err
		}
	}
}
