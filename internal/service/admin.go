package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/orderstate"
	"golang.org/x/sync/errgroup"
)

// GetOrder returns the order with its owner's name and email. Results are cached
// until the next write to the order; a read that overlapped a write is not cached.
func (s *orderService) GetOrder(ctx context.Context, id string) (entities.OrderDetails, error) {
	if data, ok := s.cache.Get(id); ok {
		var details entities.OrderDetails
		err := details.Unmarshal(data)
		if err == nil {
			return details, nil
		}
		s.logger.Warn("dropping unreadable cache entry", slog.String("order_id", id), slog.Any("error", err))
		s.cache.Delete(id)
	}

	gen := s.guard.generation(id)

	var (
		order entities.Order
		owner entities.OrderOwner
		found bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = s.repo.GetOrderByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		owner, err = s.repo.GetOrderOwner(gctx, id)
		if errors.Is(err, entities.ErrOwnerNotFound) {
			return nil
		}
		found = err == nil
		return err
	})
	if err := g.Wait(); err != nil {
		return entities.OrderDetails{}, err
	}

	details := entities.OrderDetails{Order: order}
	if found {
		details.Owner = &owner
	}

	data, err := details.Marshal()
	if err != nil {
		s.logger.Error("failed to marshal order", slog.String("order_id", id), slog.Any("error", err))
		return details, nil
	}
	if !s.guard.fill(s.cache, id, gen, data) {
		s.logger.Debug("order changed while reading, not cached", slog.String("order_id", id))
	}
	return details, nil
}

// UpdateOrder applies an admin change through the state machine. A change that lost
// a race against another writer is reported against the state that won.
func (s *orderService) UpdateOrder(ctx context.Context, identity entities.Identity, id string, change orderstate.Change) (entities.Order, error) {
	if identity.Guest() {
		return entities.Order{}, entities.ErrUnauthenticated
	}
	if !identity.IsAdmin {
		return entities.Order{}, entities.ErrForbidden
	}

	order, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}

	t, err := orderstate.Plan(order, change, s.now().UTC())
	if err != nil {
		return entities.Order{}, err
	}

	err = s.repo.ApplyTransition(ctx, id, t, nil)
	if errors.Is(err, entities.ErrStatusConflict) {
		current, getErr := s.repo.GetOrderByID(ctx, id)
		if getErr != nil {
			return entities.Order{}, getErr
		}
		return entities.Order{}, &entities.InvalidTransitionError{From: current.Status, To: t.To}
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info("order updated",
		slog.String("order_id", id),
		slog.String("from", string(t.From)),
		slog.String("to", string(t.To)),
		slog.String("by", identity.UserID),
	)
	s.committed(ctx, id, t)
	return orderstate.Apply(order, t), nil
}
