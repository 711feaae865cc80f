package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/orderstate"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/trm"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
	"github.com/shopspring/decimal"
)

type OrderRepo interface {
	GetOrderByID(ctx context.Context, id string) (entities.Order, error)
	GetOrderOwner(ctx context.Context, orderID string) (entities.OrderOwner, error)

	SaveOrder(ctx context.Context, o entities.Order) error
	SaveItems(ctx context.Context, orderID string, items []entities.LineItem) error

	// ApplyTransition must fail with entities.ErrStatusConflict when the stored
	// status is no longer t.From.
	ApplyTransition(ctx context.Context, id string, t orderstate.Transition, payment *entities.PaymentResult) error
}

type Pricer interface {
	Reconcile(ctx context.Context, cart []entities.CartItem) ([]entities.LineItem, decimal.Decimal, error)
}

type Gateway interface {
	CreateIntent(ctx context.Context, order entities.Order) (entities.PaymentIntent, error)
	CaptureIntent(ctx context.Context, intentID string) (entities.CaptureResult, error)
}

type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event entities.OrderEvent) error
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	repo      OrderRepo
	pricer    Pricer
	gateway   Gateway
	cache     Cache
	guard     cacheGuard
	events    EventPublisher
	now       func() time.Time

	storageRetry utils.RetryConfig
	gatewayRetry utils.RetryConfig
}

type Option func(*orderService)

func WithClock(now func() time.Time) Option {
	return func(s *orderService) { s.now = now }
}

// WithRetry overrides the backoff used for storage writes and intent creation.
func WithRetry(storage, gateway utils.RetryConfig) Option {
	return func(s *orderService) {
		s.storageRetry = storage
		s.gatewayRetry = gateway
	}
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repo OrderRepo,
	pricer Pricer,
	gateway Gateway,
	cache Cache,
	events EventPublisher,
	opts ...Option,
) *orderService {
	s := &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		repo:      repo,
		pricer:    pricer,
		gateway:   gateway,
		cache:     cache,
		events:    events,
		now:       time.Now,
		storageRetry: utils.RetryConfig{
			InitialDelay: 100 * time.Millisecond,
			MaxAttempts:  5,
			Multiplier:   2,
		},
		gatewayRetry: utils.RetryConfig{
			InitialDelay: 200 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			MaxAttempts:  3,
			Multiplier:   2,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// committed runs after a transition has been written: the cached read model is
// dropped and the change is announced. Publishing is best effort.
func (s *orderService) committed(ctx context.Context, orderID string, t orderstate.Transition) {
	s.guard.invalidate(s.cache, orderID)
	orderTransitions.WithLabelValues(string(t.From), string(t.To)).Inc()

	event := entities.OrderEvent{OrderID: orderID, From: t.From, To: t.To, At: t.At}
	if err := s.events.PublishOrderEvent(ctx, event); err != nil {
		s.logger.Warn("failed to publish order event",
			slog.String("order_id", orderID),
			slog.String("to", string(t.To)),
			slog.Any("error", err),
		)
	}
}
