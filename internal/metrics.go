package internal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics collection for HTTP requests and
// help desk activity
type Metrics struct {
	reqTotal       *prometheus.CounterVec
	reqLatency     *prometheus.HistogramVec
	assetsImported prometheus.Counter
	assetsCurrent  prometheus.Gauge
	ticketsCreated prometheus.Counter
	registry       *prometheus.Registry
}

// NewMetrics creates a new Metrics instance with a private Prometheus registry
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	reqTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	reqLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	assetsImported := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "helpdesk_assets_imported_total",
		Help: "Asset rows imported across all uploads",
	})

	assetsCurrent := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "helpdesk_assets_current",
		Help: "Assets held from the most recent upload",
	})

	ticketsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "helpdesk_tickets_created_total",
		Help: "Tickets created",
	})

	registry.MustRegister(reqTotal, reqLatency, assetsImported, assetsCurrent, ticketsCreated)

	return &Metrics{
		reqTotal:       reqTotal,
		reqLatency:     reqLatency,
		assetsImported: assetsImported,
		assetsCurrent:  assetsCurrent,
		ticketsCreated: ticketsCreated,
		registry:       registry,
	}
}

// AssetsImported records an upload that replaced the asset list with n rows.
func (m *Metrics) AssetsImported(n int) {
	m.assetsImported.Add(float64(n))
	m.assetsCurrent.Set(float64(n))
}

// TicketCreated records a new ticket.
func (m *Metrics) TicketCreated() {
	m.ticketsCreated.Inc()
}

// Middleware returns a Chi middleware that collects metrics
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &statusRecorder{ResponseWriter: w, code: http.StatusOK}

			next.ServeHTTP(rw, r)

			// Prefer chi's route pattern to keep label cardinality bounded
			path := r.URL.Path
			if chiCtx := chi.RouteContext(r.Context()); chiCtx != nil && len(chiCtx.RoutePatterns) > 0 {
				path = chiCtx.RoutePatterns[len(chiCtx.RoutePatterns)-1]
			}

			status := http.StatusText(rw.code)
			m.reqTotal.WithLabelValues(r.Method, path, status).Inc()
			m.reqLatency.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler returns an http.Handler that serves Prometheus metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// statusRecorder captures the HTTP status code for metrics
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.code = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	return sr.ResponseWriter.Write(b)
}
