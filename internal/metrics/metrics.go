package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the application-specific Prometheus collectors.
var Registry = prometheus.NewRegistry()

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodorder",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodorder",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "path"},
	)

	cartOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodorder",
			Subsystem: "cart",
			Name:      "operations_total",
			Help:      "Cart store operations by kind.",
		},
		[]string{"op"},
	)

	cartPersistFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodorder",
			Subsystem: "cart",
			Name:      "persist_failures_total",
			Help:      "Cart snapshots that could not be written to or read from storage.",
		},
		[]string{"op"},
	)

	cartPersistDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "foodorder",
			Subsystem: "cart",
			Name:      "persist_duration_seconds",
			Help:      "Time spent writing a cart snapshot.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodorder",
			Subsystem: "shipping",
			Name:      "requests_total",
			Help:      "Calls to the logistics provider by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		cartOperations,
		cartPersistFailures,
		cartPersistDuration,
		upstreamRequests,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(method, path, status string, d time.Duration) {
	httpRequests.WithLabelValues(method, path, status).Inc()
	httpDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func RecordCartOperation(op string) {
	cartOperations.WithLabelValues(op).Inc()
}

func RecordPersistFailure(op string) {
	cartPersistFailures.WithLabelValues(op).Inc()
}

func ObservePersist(d time.Duration) {
	cartPersistDuration.Observe(d.Seconds())
}

func RecordUpstream(endpoint, outcome string) {
	upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
