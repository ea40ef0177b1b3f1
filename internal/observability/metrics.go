package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus counters for the HTTP surface and the token
// lifecycle. A nil *Metrics is safe to call, so wiring stays optional in tests.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorTotal      *prometheus.CounterVec
	tokensIssued    *prometheus.CounterVec
	reissueTotal    *prometheus.CounterVec
	tokensRevoked   *prometheus.CounterVec
}

// NewMetrics builds a collector backed by its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "photoshare_http_requests_total",
			Help: "HTTP requests by path, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "photoshare_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "photoshare_http_errors_total",
			Help: "Failed HTTP requests by path, method and error code.",
		}, []string{"path", "method", "code"}),
		tokensIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "photoshare_tokens_issued_total",
			Help: "Signed tokens minted, by kind.",
		}, []string{"type"}),
		reissueTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "photoshare_token_reissue_total",
			Help: "Access-token reissue attempts by result.",
		}, []string{"result"}),
		tokensRevoked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "photoshare_tokens_revoked_total",
			Help: "Tokens pushed into the blacklist, by reason.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(
		m.requestTotal,
		m.requestDuration,
		m.errorTotal,
		m.tokensIssued,
		m.reissueTotal,
		m.tokensRevoked,
	)
	return m
}

// RecordRequest increments counters for completed requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorTotal.WithLabelValues(path, method, code).Inc()
}

// RecordTokenIssued counts minted tokens ("access" or "refresh").
func (m *Metrics) RecordTokenIssued(kind string) {
	if m == nil {
		return
	}
	m.tokensIssued.WithLabelValues(kind).Inc()
}

// RecordReissue counts reissue attempts ("ok", "invalid", "fail").
func (m *Metrics) RecordReissue(result string) {
	if m == nil {
		return
	}
	m.reissueTotal.WithLabelValues(result).Inc()
}

// RecordTokenRevoked counts blacklist insertions ("rotation" or "logout").
func (m *Metrics) RecordTokenRevoked(reason string) {
	if m == nil {
		return
	}
	m.tokensRevoked.WithLabelValues(reason).Inc()
}

// Handler returns the Prometheus scrape handler for this collector's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ServeMetrics exposes /metrics on its own listener so scrapes never compete
// with application traffic.
func (m *Metrics) ServeMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
