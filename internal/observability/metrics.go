// Package observability exposes the Prometheus metrics surface.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the collectors tracked across the dataset store and its
// persistence gateway.
type Metrics struct {
	MutationsTotal   *prometheus.CounterVec
	LoadsTotal       *prometheus.CounterVec
	CacheSavesTotal  *prometheus.CounterVec
	RemoteSavesTotal *prometheus.CounterVec
	SaveDuration     prometheus.Histogram
	SearchesTotal    prometheus.Counter
	RequestsTotal    *prometheus.CounterVec
}

// NewMetrics registers the collectors with the given registerer. Passing
// nil uses the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		MutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "archcore",
			Name:      "mutations_total",
			Help:      "Committed dataset mutations by entity and action.",
		}, []string{"entity", "action"}),
		LoadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "archcore",
			Name:      "loads_total",
			Help:      "Dataset loads by source (cache, seed, empty).",
		}, []string{"source"}),
		CacheSavesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "archcore",
			Name:      "cache_saves_total",
			Help:      "Debounced cache persists by outcome.",
		}, []string{"outcome"}),
		RemoteSavesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "archcore",
			Name:      "remote_saves_total",
			Help:      "Debounced remote persists by outcome.",
		}, []string{"outcome"}),
		SaveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "archcore",
			Name:      "save_duration_seconds",
			Help:      "Time spent serializing and writing a snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		SearchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "archcore",
			Name:      "searches_total",
			Help:      "Global search invocations.",
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "archcore",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status.",
		}, []string{"method", "route", "status"}),
	}
}
