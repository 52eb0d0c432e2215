package coaching

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachd_generation_attempts_total",
			Help: "Generation attempts by outcome (success, language_violation, content_violation, topic_drift, generator_error)",
		},
		[]string{"outcome"},
	)

	generationResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachd_generation_results_total",
			Help: "Terminal generation results by status (generated, skipped, rejected, error)",
		},
		[]string{"status"},
	)

	patternsDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coachd_patterns_total",
			Help: "Weekly pattern classifications by pattern type",
		},
		[]string{"pattern"},
	)

	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "coachd_generation_duration_seconds",
			Help:    "End-to-end duration of a weekly generation run",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)
