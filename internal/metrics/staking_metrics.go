// Package metrics defines staking-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Staking counter vectors
var (
	StakeCalculationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stake_calculations_total",
		Help:      "Total number of stake calculations by strategy and outcome",
	}, []string{"strategy", "outcome"})

	StakeSearchExhaustedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stake_search_exhausted_total",
		Help:      "Total number of EV searches stopped by the iteration budget",
	}, []string{"strategy"})
)

// Staking histogram vectors
var (
	StakeSearchIterations = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stake_search_iterations",
		Help:      "Branch-and-bound iterations per EV search",
		Buckets:   []float64{10, 100, 1000, 10000, 50000, 100000, 1000000},
	}, []string{"strategy"})
)

// RecordStakeCalculation records a finished stake calculation. Outcome is one
// of "profitable", "unprofitable" or "invalid".
func RecordStakeCalculation(strategy, outcome string) {
	StakeCalculationsTotal.WithLabelValues(strategy, outcome).Inc()
}

// RecordStakeSearch records the iterations of one EV search.
func RecordStakeSearch(strategy string, iterations int, exhausted bool) {
	StakeSearchIterations.WithLabelValues(strategy).Observe(float64(iterations))
	if exhausted {
		StakeSearchExhaustedTotal.WithLabelValues(strategy).Inc()
	}
}
