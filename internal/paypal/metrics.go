package paypal

import (
	"errors"
	"strconv"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var gatewayRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "checkout_service",
	Subsystem: "paypal",
	Name:      "request_duration_seconds",
	Help:      "Latency of payment processor calls in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"op", "status"})

func observe(op string, start time.Time, err error) {
	status := "ok"
	var gwErr *entities.GatewayError
	switch {
	case err == nil:
	case errors.As(err, &gwErr) && gwErr.Status != 0:
		status = strconv.Itoa(gwErr.Status)
	default:
		status = "error"
	}
	gatewayRequestDuration.WithLabelValues(op, status).Observe(time.Since(start).Seconds())
}
