package service

import (
	"errors"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checkoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout_service",
		Subsystem: "checkout",
		Name:      "completed_steps_total",
		Help:      "Checkout steps that finished successfully.",
	}, []string{"step"})

	checkoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout_service",
		Subsystem: "checkout",
		Name:      "failures_total",
		Help:      "Checkout steps that failed, by error kind.",
	}, []string{"step", "kind"})

	orderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout_service",
		Subsystem: "orders",
		Name:      "transitions_total",
		Help:      "Committed order status changes.",
	}, []string{"from", "to"})
)

const (
	stepBegin    = "begin"
	stepFinalize = "finalize"
)

// errorKind buckets an error for the failures counter.
func errorKind(err error) string {
	var (
		validationErr *entities.ValidationError
		notFoundErr   *entities.LineItemNotFoundError
		gatewayErr    *entities.GatewayError
		transitionErr *entities.InvalidTransitionError
	)
	switch {
	case errors.As(err, &validationErr):
		return "invalid_cart"
	case errors.As(err, &notFoundErr):
		return "item_unavailable"
	case errors.As(err, &gatewayErr), errors.Is(err, entities.ErrCredentialsMissing), errors.Is(err, entities.ErrUnlinkedCapture):
		return "payment_failed"
	case errors.As(err, &transitionErr):
		return "invalid_transition"
	case errors.Is(err, entities.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, entities.ErrOrderNotFound):
		return "order_not_found"
	default:
		return "internal"
	}
}
