// SPDX-FileCopyrightText: 2025 Inteleqtus
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess         = "success"
	outcomeFallback        = "fallback"
	outcomeValidationError = "validation_error"
	outcomeInfeasible      = "infeasible"
	outcomeError           = "error"
)

var optimizationsCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bmt_optimizations_total",
		Help: "Number of optimization requests, by outcome.",
	},
	[]string{"outcome"},
)

var solveDurationHistogram = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "bmt_solve_duration_secs",
		Help:    "Wall-clock duration of the assignment pipeline per request.",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	},
)

func init() {
	prometheus.MustRegister(optimizationsCounter)
	prometheus.MustRegister(solveDurationHistogram)
}

func countOptimization(outcome string) {
	optimizationsCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

func observeSolveDuration(d time.Duration) {
	solveDurationHistogram.Observe(d.Seconds())
}
