// Package metrics exposes Prometheus metrics for decoding and the HTTP API
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/ssargent/cohbin/pkg/parse7"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Decode metrics
	decodeFilesTotal   *prometheus.CounterVec
	decodeRecordsTotal *prometheus.CounterVec
	decodeWarnings     *prometheus.CounterVec
	decodeDuration     *prometheus.HistogramVec

	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// API key authentication metrics
	authRequestsTotal *prometheus.CounterVec
}

// New creates all metrics and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		decodeFilesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cohbin_decode_files_total",
				Help: "Total number of bin files decoded",
			},
			[]string{"kind", "status"},
		),

		decodeRecordsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cohbin_decode_records_total",
				Help: "Total number of records decoded",
			},
			[]string{"kind", "status"},
		),

		decodeWarnings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cohbin_decode_warnings_total",
				Help: "Total number of records with unread trailing bytes",
			},
			[]string{"kind"},
		),

		decodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cohbin_decode_duration_seconds",
				Help:    "Time to decode a whole bin file in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cohbin_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cohbin_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cohbin_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cohbin_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),
	}
}

func status(ok bool) string {
	if ok {
		return statusSuccess
	}
	return statusError
}

// Observer returns a decode observer that records under kind
func (m *Metrics) Observer(kind string) parse7.Observer {
	return &observer{m: m, kind: kind}
}

type observer struct {
	m    *Metrics
	kind string
}

func (o *observer) ObserveRecord(ok bool) {
	o.m.decodeRecordsTotal.WithLabelValues(o.kind, status(ok)).Inc()
}

func (o *observer) ObserveWarning() {
	o.m.decodeWarnings.WithLabelValues(o.kind).Inc()
}

func (o *observer) ObserveFile(records, failures int, elapsed time.Duration, err error) {
	o.m.decodeFilesTotal.WithLabelValues(o.kind, status(err == nil)).Inc()
	o.m.decodeDuration.WithLabelValues(o.kind).Observe(elapsed.Seconds())
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	m.authRequestsTotal.WithLabelValues(status(success)).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware counts requests that presented an API key
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasAPIKey := r.Header.Get("X-API-Key") != ""

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next(h).ServeHTTP(rw, r)

			if hasAPIKey {
				m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
			}
		})
	}
}

// WriteTextfile writes every metric gathered from g to path in the text
// exposition format
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
