// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_queries_total",
			Help: "Total number of answered queries by classified intent",
		},
		[]string{"intent"},
	)

	SubmissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_submissions_rejected_total",
			Help: "Total number of rejected submissions by error code",
		},
		[]string{"reason"},
	)

	SynthesisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulse_synthesis_duration_seconds",
			Help:    "Duration of classify, extract and synthesize in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
		[]string{"intent"},
	)

	SessionsComposing = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pulse_sessions_composing",
			Help: "Number of sessions currently composing a reply",
		},
	)

	DatasetCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulse_dataset_cache_total",
			Help: "Dataset cache lookups by result",
		},
		[]string{"result"},
	)
)
