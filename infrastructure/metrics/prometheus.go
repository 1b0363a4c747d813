// ABOUTME: Prometheus implementation of interfaces.Metrics
// ABOUTME: Counts upstream calls by endpoint/outcome and cache lookups by kind

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "recipe_finder"

// Prometheus records metrics on its own registry
type Prometheus struct {
	registry         *prometheus.Registry
	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them together with the
// Go runtime and process collectors
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		upstreamTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Catalog requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Catalog request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by entry kind and result.",
		}, []string{"kind", "result"}),
	}

	p.registry.MustRegister(
		p.upstreamTotal,
		p.upstreamDuration,
		p.cacheLookups,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return p
}

// ObserveUpstream implements interfaces.Metrics
func (p *Prometheus) ObserveUpstream(endpoint, outcome string, duration time.Duration) {
	p.upstreamTotal.WithLabelValues(endpoint, outcome).Inc()
	p.upstreamDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// ObserveCache implements interfaces.Metrics
func (p *Prometheus) ObserveCache(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookups.WithLabelValues(kind, result).Inc()
}

// Handler serves the registry in the Prometheus exposition format
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
