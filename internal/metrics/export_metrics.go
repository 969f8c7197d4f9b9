// Package metrics defines export-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Export metrics
var (
	ExportRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "export_runs_total",
		Help:      "Total number of ranking exports by category and outcome",
	}, []string{"category", "outcome"})

	ExportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "export_duration_seconds",
		Help:      "Duration of full ranking export runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

// RecordExport records one category export.
func RecordExport(category, outcome string) {
	ExportRunsTotal.WithLabelValues(category, outcome).Inc()
}

// RecordExportDuration records how long a full export run took.
func RecordExportDuration(durationSeconds float64) {
	ExportDuration.Observe(durationSeconds)
}
