package events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout_service",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Order events written to Kafka, by target status.",
	}, []string{"to"})

	eventsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "checkout_service",
		Subsystem: "events",
		Name:      "failed_total",
		Help:      "Order events that could not be written.",
	})
)
