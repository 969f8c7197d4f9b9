// Package metrics provides the centralized Prometheus metrics registry.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hippique"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	TableLoadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "table_loads_total",
		Help:      "Total number of category table loads by outcome",
	}, []string{"category", "outcome"})
	ResolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resolutions_total",
		Help:      "Total number of actor name resolutions by match method",
	}, []string{"category", "method"})
	ParticipantsScoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "participants_scored_total",
		Help:      "Total number of participants scored",
	})
	TableCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "table_cache_hits_total",
		Help:      "Total number of ranked table cache hits",
	})
	TableCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "table_cache_misses_total",
		Help:      "Total number of ranked table cache misses",
	})
)

// Gauge metrics
var (
	TableSize = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "table_size",
		Help:      "Number of actors in each ranked table",
	}, []string{"category"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(TableLoadsTotal)
		registry.MustRegister(ResolutionsTotal)
		registry.MustRegister(ParticipantsScoredTotal)
		registry.MustRegister(TableCacheHitsTotal)
		registry.MustRegister(TableCacheMissesTotal)
		registry.MustRegister(TableSize)

		// Staking metrics
		registry.MustRegister(StakeCalculationsTotal)
		registry.MustRegister(StakeSearchIterations)
		registry.MustRegister(StakeSearchExhaustedTotal)

		// Export metrics
		registry.MustRegister(ExportRunsTotal)
		registry.MustRegister(ExportDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordTableLoad records a category table load and its resulting size.
func RecordTableLoad(category, outcome string, size int) {
	TableLoadsTotal.WithLabelValues(category, outcome).Inc()
	TableSize.WithLabelValues(category).Set(float64(size))
}

// RecordResolution records how an actor name was matched.
func RecordResolution(category, method string) {
	ResolutionsTotal.WithLabelValues(category, method).Inc()
}

// RecordParticipantScored records a participant score computation.
func RecordParticipantScored() {
	ParticipantsScoredTotal.Inc()
}

// RecordTableCacheHit records a ranked table served from the session cache.
func RecordTableCacheHit() {
	TableCacheHitsTotal.Inc()
}

// RecordTableCacheMiss records a ranked table that had to be loaded.
func RecordTableCacheMiss() {
	TableCacheMissesTotal.Inc()
}
