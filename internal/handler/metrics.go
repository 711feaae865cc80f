package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	capturesProcessed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "checkout_service",
			Subsystem: "kafka_consumer",
			Name:      "captures_processed_total",
			Help:      "Total number of successfully processed capture notifications",
		},
	)

	capturesFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "checkout_service",
			Subsystem: "kafka_consumer",
			Name:      "captures_failed_total",
			Help:      "Total number of failed capture notifications",
		},
	)

	capturesDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "checkout_service",
			Subsystem: "kafka_consumer",
			Name:      "captures_dlq_total",
			Help:      "Total number of capture notifications written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "checkout_service",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	captureProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "checkout_service",
			Subsystem: "kafka_consumer",
			Name:      "capture_processing_duration_seconds",
			Help:      "Histogram of capture processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	capturesInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "checkout_service",
			Subsystem: "kafka_consumer",
			Name:      "captures_in_progress",
			Help:      "Number of capture notifications currently being processed",
		},
	)
)

var apiErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "checkout_service",
		Subsystem: "http",
		Name:      "api_errors_total",
		Help:      "Total number of error responses by kind",
	},
	[]string{"kind"},
)

func RegisterMetrics() {
	prometheus.MustRegister(
		capturesProcessed,
		capturesFailed,
		capturesDLQ,
		commitErrors,
		captureProcessingDuration,
		capturesInProgress,

		apiErrorsTotal,
	)
}
