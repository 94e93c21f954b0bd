package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Database
	queryDuration *prometheus.HistogramVec
	queryErrors   *prometheus.CounterVec

	// Reports
	reportsBuilt       *prometheus.CounterVec
	goalLookupFailures prometheus.Counter
}

// NewManager creates a manager on a fresh registry unless one is supplied.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "yield",
		subsystem:        "api",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"route", "method", "status_code"},
	)

	m.queryDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds by query name",
			Buckets:   m.histogramBuckets,
		},
		[]string{"query"},
	)

	m.queryErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "db",
			Name:      "query_errors_total",
			Help:      "Total number of failed database queries by query name",
		},
		[]string{"query"},
	)

	m.reportsBuilt = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "reports_total",
			Help:      "Total number of reports served by kind and calc mode",
		},
		[]string{"report", "calc_mode"},
	)

	m.goalLookupFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "goal_target_lookup_failures_total",
		Help:      "Goal target lookups that failed and were served without targets",
	})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Enabled reports whether recording is on.
func (m *Manager) Enabled() bool { return m != nil && m.enabled }

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest counts one request and observes its latency.
func (m *Manager) RecordHTTPRequest(route, method string, status int, d time.Duration) {
	if !m.Enabled() {
		return
	}
	code := strconv.Itoa(status)
	m.httpRequests.WithLabelValues(route, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(route, method, code).Observe(d.Seconds())
}

// ObserveQuery records one database query. It matches the postgres
// adapter's query observer signature.
func (m *Manager) ObserveQuery(name string, d time.Duration, err error) {
	if !m.Enabled() {
		return
	}
	m.queryDuration.WithLabelValues(name).Observe(d.Seconds())
	if err != nil {
		m.queryErrors.WithLabelValues(name).Inc()
	}
}

// RecordReport counts one served report.
func (m *Manager) RecordReport(report, calcMode string) {
	if !m.Enabled() {
		return
	}
	m.reportsBuilt.WithLabelValues(report, calcMode).Inc()
}

// RecordGoalLookupFailure counts one degraded goal target lookup.
func (m *Manager) RecordGoalLookupFailure() {
	if !m.Enabled() {
		return
	}
	m.goalLookupFailures.Inc()
}
