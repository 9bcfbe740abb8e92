// Package metrics holds the Prometheus collectors exported by the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusSuccess labels a password that was generated.
const StatusSuccess = "success"

// Metrics contains the service's custom collectors.
type Metrics struct {
	registry           *prometheus.Registry
	PasswordsGenerated *prometheus.CounterVec
	PasswordLength     prometheus.Histogram
	HTTPRequests       *prometheus.CounterVec
}

// New creates a private registry with the Go and process collectors and the
// service's own metrics registered on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: reg,
		PasswordsGenerated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passgen_passwords_generated_total",
				Help: "Total number of password generation attempts by status",
			},
			[]string{"status"},
		),
		PasswordLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "passgen_password_length",
				Help:    "Length of successfully generated passwords",
				Buckets: []float64{0, 8, 12, 16, 24, 32, 64, 128, 256, 1024},
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "passgen_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
	}

	reg.MustRegister(m.PasswordsGenerated, m.PasswordLength, m.HTTPRequests)
	return m
}

// RecordGeneration counts one generation attempt. length is observed only on success.
func (m *Metrics) RecordGeneration(status string, length int) {
	if m == nil {
		return
	}
	m.PasswordsGenerated.WithLabelValues(status).Inc()
	if status == StatusSuccess {
		m.PasswordLength.Observe(float64(length))
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
