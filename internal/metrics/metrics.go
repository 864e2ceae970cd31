// Package metrics holds the Prometheus collectors of the query server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "transferlens"

// Recorder owns a registry and the collectors registered on it. A nil *Recorder
// is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	viewRecords     *prometheus.CounterVec
	skippedPayloads *prometheus.CounterVec
	backendLatency  *prometheus.HistogramVec
	httpRequests    *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)
	return &Recorder{
		registry: registry,
		viewRecords: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_records_total",
			Help:      "Records emitted per analytic view",
		}, []string{"view"}),
		skippedPayloads: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payloads_skipped_total",
			Help:      "Spans whose response body tag could not be parsed",
		}, []string{"view"}),
		backendLatency: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_query_duration_seconds",
			Help:      "Elasticsearch query latency per analytic view",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
		}, []string{"view"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}
}

func (r *Recorder) RecordsEmitted(view string, count int) {
	if r == nil {
		return
	}
	r.viewRecords.WithLabelValues(view).Add(float64(count))
}

func (r *Recorder) PayloadSkipped(view string) {
	if r == nil {
		return
	}
	r.skippedPayloads.WithLabelValues(view).Inc()
}

func (r *Recorder) ObserveBackendQuery(view string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.backendLatency.WithLabelValues(view).Observe(elapsed.Seconds())
}

func (r *Recorder) HttpRequest(route string, code string) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(route, code).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
