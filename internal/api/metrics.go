package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// evaluationsTotal counts single evaluations by outcome class
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flexknot_evaluations_total",
		Help: "Total likelihood evaluations by status",
	}, []string{"status"})

	// evaluationDuration tracks single evaluation latency
	evaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flexknot_evaluation_duration_seconds",
		Help:    "Likelihood evaluation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 15), // 10us to ~160ms
	})

	// sweepSize tracks proposals per sweep request
	sweepSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flexknot_sweep_size",
		Help:    "Number of proposals per sweep request",
		Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
	})
)
