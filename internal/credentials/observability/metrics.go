// Package observability holds the Prometheus metrics exposed on /metrics.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for flow counters.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeConflict     = "conflict"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

// Metrics groups the service's collectors behind a private registry so tests
// can build as many instances as they like. A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Registrations   *prometheus.CounterVec
	Logins          *prometheus.CounterVec
	Rehashes        prometheus.Counter
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a registry with the Go and process collectors plus the
// credential service metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		Registrations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credentials_registrations_total",
				Help: "Total number of registration attempts by outcome",
			},
			[]string{"outcome"},
		),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "credentials_logins_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		Rehashes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "credentials_password_rehashes_total",
			Help: "Total number of legacy password hashes upgraded on login",
		}),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "credentials_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds by route and status",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "status"},
		),
	}

	reg.MustRegister(m.Registrations, m.Logins, m.Rehashes, m.RequestDuration)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (m *Metrics) RecordRegistration(outcome string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordRehash() {
	if m == nil {
		return
	}
	m.Rehashes.Inc()
}

// InstrumentRoute times every request served by h under the given route label.
func (m *Metrics) InstrumentRoute(route string, h http.Handler) http.Handler {
	if m == nil {
		return h
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		h.ServeHTTP(sw, r)
		m.RequestDuration.WithLabelValues(route, strconv.Itoa(sw.status)).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
