package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Refresh outcomes used as the "result" label.
const (
	ResultOK                = "ok"
	ResultSourceUnavailable = "source_unavailable"
	ResultExtractionFailed  = "extraction_failed"
)

type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RefreshTotal            *prometheus.CounterVec
	RefreshDuration         prometheus.Histogram
	LastRefreshSuccess      prometheus.Gauge
	LazyRefreshTotal        prometheus.Counter
	HistorialAppendFailures prometheus.Counter
}

// New registers the service collectors on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status_code"},
		),

		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),

		RefreshTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bcv_refresh_total",
				Help: "Refresh attempts by result",
			},
			[]string{"result"},
		),

		RefreshDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bcv_refresh_duration_seconds",
				Help:    "Time spent fetching and extracting rates",
				Buckets: prometheus.DefBuckets,
			},
		),

		LastRefreshSuccess: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "bcv_last_refresh_success_timestamp_seconds",
				Help: "Unix time of the last accepted snapshot",
			},
		),

		LazyRefreshTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "bcv_lazy_refresh_total",
				Help: "Refreshes triggered by a read on an empty cache",
			},
		),

		HistorialAppendFailures: f.NewCounter(
			prometheus.CounterOpts{
				Name: "bcv_historial_append_failures_total",
				Help: "History writes that failed after a successful refresh",
			},
		),
	}
}

// The helpers below are nil-safe so components can run without metrics.

func (m *Metrics) ObserveRefresh(result string, took time.Duration) {
	if m == nil {
		return
	}
	m.RefreshTotal.WithLabelValues(result).Inc()
	m.RefreshDuration.Observe(took.Seconds())
	if result == ResultOK {
		m.LastRefreshSuccess.SetToCurrentTime()
	}
}

func (m *Metrics) LazyRefresh() {
	if m == nil {
		return
	}
	m.LazyRefreshTotal.Inc()
}

func (m *Metrics) HistorialAppendFailed() {
	if m == nil {
		return
	}
	m.HistorialAppendFailures.Inc()
}

func (m *Metrics) ObserveHTTP(path, method string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(path, method).Observe(took.Seconds())
	m.HTTPRequestsTotal.WithLabelValues(path, method, statusClass(status)).Inc()
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
