package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/orderstate"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/utils"
	"github.com/google/uuid"
)

// BeginCheckout prices the cart from the catalog, stores a pending order and opens
// a payment intent for its total. When the processor fails the order stays pending.
func (s *orderService) BeginCheckout(
	ctx context.Context,
	identity entities.Identity,
	cart []entities.CartItem,
	address entities.ShippingAddress,
) (intent entities.PaymentIntent, err error) {
	defer func() {
		if err != nil {
			checkoutFailures.WithLabelValues(stepBegin, errorKind(err)).Inc()
			return
		}
		checkoutsTotal.WithLabelValues(stepBegin).Inc()
	}()

	if identity.Guest() {
		return entities.PaymentIntent{}, entities.ErrUnauthenticated
	}
	if len(cart) == 0 {
		return entities.PaymentIntent{}, entities.NewValidationError("items", "cart is empty")
	}
	if !address.Complete() {
		return entities.PaymentIntent{}, entities.NewValidationError("shippingAddress", "all address fields are required")
	}

	items, total, err := s.pricer.Reconcile(ctx, cart)
	if err != nil {
		return entities.PaymentIntent{}, err
	}

	now := s.now().UTC()
	owner := identity.UserID
	order := entities.Order{
		ID:              uuid.NewString(),
		OwnerID:         &owner,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: address,
		Status:          entities.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.saveOrder(ctx, order); err != nil {
		s.logger.Error("failed to save order", slog.String("order_id", order.ID), slog.Any("error", err))
		return entities.PaymentIntent{}, err
	}

	// Nothing has been charged yet, so transient processor failures are retried.
	// The create call carries the order id as request id, which makes repeats safe.
	cfg := s.gatewayRetry
	cfg.Retryable = retryableGatewayError
	err = utils.Retry(ctx, cfg, func() error {
		var err error
		intent, err = s.gateway.CreateIntent(ctx, order)
		return err
	})
	if err != nil {
		s.logger.Error("failed to create payment intent", slog.String("order_id", order.ID), slog.Any("error", err))
		return entities.PaymentIntent{}, fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.logger.Info("checkout started",
		slog.String("order_id", order.ID),
		slog.String("intent_id", intent.ID),
		slog.String("total", total.StringFixed(2)),
	)
	return intent, nil
}

func (s *orderService) saveOrder(ctx context.Context, order entities.Order) error {
	fn := func() error {
		return s.txManager.Do(ctx, func(ctx context.Context) error {
			if err := s.repo.SaveOrder(ctx, order); err != nil {
				return fmt.Errorf("failed to save order: %w", err)
			}
			if err := s.repo.SaveItems(ctx, order.ID, order.Items); err != nil {
				return fmt.Errorf("failed to save items: %w", err)
			}

			s.logger.Debug("order saved", slog.String("order_id", order.ID))
			return nil
		})
	}

	cfg := s.storageRetry
	cfg.Retryable = retryableStorageError
	return utils.Retry(ctx, cfg, fn)
}

// FinalizeCheckout captures an approved intent exactly once. A completed capture
// marks the order paid; any other processor status is returned as is.
func (s *orderService) FinalizeCheckout(ctx context.Context, intentID string) (res entities.CaptureResult, err error) {
	defer func() {
		if err != nil {
			checkoutFailures.WithLabelValues(stepFinalize, errorKind(err)).Inc()
			return
		}
		checkoutsTotal.WithLabelValues(stepFinalize).Inc()
	}()

	if strings.TrimSpace(intentID) == "" {
		return entities.CaptureResult{}, entities.NewValidationError("intentId", "required")
	}

	res, err = s.gateway.CaptureIntent(ctx, intentID)
	if err != nil {
		s.logger.Error("failed to capture payment", slog.String("intent_id", intentID), slog.Any("error", err))
		return entities.CaptureResult{}, fmt.Errorf("failed to capture payment: %w", err)
	}

	if !res.Completed() {
		s.logger.Info("capture not completed",
			slog.String("intent_id", intentID),
			slog.String("status", res.Status),
		)
		return res, nil
	}

	if res.CorrelationID == "" {
		s.logger.Error("completed capture has no order reference",
			slog.String("intent_id", intentID),
			slog.String("transaction_id", res.TransactionID),
		)
		return res, entities.ErrUnlinkedCapture
	}

	if err := s.ConfirmPayment(ctx, res.CorrelationID, res); err != nil {
		return res, err
	}
	return res, nil
}

// ConfirmPayment records a completed capture on the order it belongs to. Confirming
// an order that is already paid is a no-op, so webhook redeliveries and racing
// client finalizes are harmless.
func (s *orderService) ConfirmPayment(ctx context.Context, orderID string, res entities.CaptureResult) error {
	if orderID == "" {
		return entities.NewValidationError("correlationId", "capture is not linked to an order")
	}
	if !res.Completed() {
		return entities.NewValidationError("status", "capture is not completed: "+res.Status)
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	t, applied, err := orderstate.Capture(order, s.now().UTC())
	if err != nil {
		return err
	}
	if !applied {
		s.logger.Debug("order already paid", slog.String("order_id", orderID))
		return nil
	}

	payment := res.PaymentResult()
	err = s.repo.ApplyTransition(ctx, orderID, t, &payment)
	if errors.Is(err, entities.ErrStatusConflict) {
		current, getErr := s.repo.GetOrderByID(ctx, orderID)
		if getErr != nil {
			return getErr
		}
		if current.IsPaid {
			s.logger.Debug("order paid concurrently", slog.String("order_id", orderID))
			return nil
		}
		return &entities.InvalidTransitionError{From: current.Status, To: entities.StatusPaid}
	}
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	s.logger.Info("order paid",
		slog.String("order_id", orderID),
		slog.String("transaction_id", res.TransactionID),
	)
	s.committed(ctx, orderID, t)
	return nil
}

func retryableStorageError(err error) bool {
	return !errors.Is(err, entities.ErrDataRejected) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func retryableGatewayError(err error) bool {
	var gwErr *entities.GatewayError
	return errors.As(err, &gwErr) && gwErr.Retryable()
}
