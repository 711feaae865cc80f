// Package orderstate holds the rules for moving an order between statuses.
// It never touches storage or the payment processor; callers apply the planned
// Transition with a conditional write keyed on Transition.From.
package orderstate

import (
	"slices"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
)

var transitions = map[entities.Status][]entities.Status{
	entities.StatusPending:   {entities.StatusPaid, entities.StatusCancelled},
	entities.StatusPaid:      {entities.StatusShipped, entities.StatusCancelled},
	entities.StatusShipped:   {entities.StatusDelivered},
	entities.StatusDelivered: nil,
	entities.StatusCancelled: nil,
}

func CanTransition(from, to entities.Status) bool {
	if from.Terminal() {
		return false
	}
	return slices.Contains(transitions[from], to)
}

// Transition is a planned status change. SetPaid and SetDelivered tell the ledger
// which flag/timestamp pair to stamp with At.
type Transition struct {
	From         entities.Status
	To           entities.Status
	SetPaid      bool
	SetDelivered bool
	At           time.Time
}

// Change is an admin request. Nil fields are left as they are.
type Change struct {
	Status      *entities.Status
	IsPaid      *bool
	IsDelivered *bool
}

func (c Change) Empty() bool {
	return c.Status == nil && c.IsPaid == nil && c.IsDelivered == nil
}

// Plan resolves an admin change against the current order.
// Setting IsDelivered forces the delivered status; setting IsPaid means paid.
func Plan(order entities.Order, change Change, now time.Time) (Transition, error) {
	if change.Empty() {
		return Transition{}, entities.NewValidationError("status", "nothing to change")
	}

	target, err := target(change)
	if err != nil {
		return Transition{}, err
	}

	if !CanTransition(order.Status, target) {
		return Transition{}, &entities.InvalidTransitionError{From: order.Status, To: target}
	}

	return newTransition(order.Status, target, now), nil
}

func target(change Change) (entities.Status, error) {
	var candidates []entities.Status

	if change.Status != nil {
		if !change.Status.Valid() {
			return "", entities.NewValidationError("status", "unknown status "+string(*change.Status))
		}
		candidates = append(candidates, *change.Status)
	}
	if change.IsPaid != nil {
		if !*change.IsPaid {
			return "", entities.NewValidationError("isPaid", "payment confirmation cannot be cleared")
		}
		// A paid flag next to a later status or the delivered flag only restates history.
		if change.IsDelivered == nil {
			if change.Status != nil && !paidOrLater(*change.Status) {
				return "", entities.NewValidationError("isPaid", "conflicts with status "+string(*change.Status))
			}
			if change.Status == nil {
				candidates = append(candidates, entities.StatusPaid)
			}
		}
	}
	if change.IsDelivered != nil {
		if !*change.IsDelivered {
			return "", entities.NewValidationError("isDelivered", "delivery confirmation cannot be cleared")
		}
		candidates = append(candidates, entities.StatusDelivered)
	}

	for _, c := range candidates[1:] {
		if c != candidates[0] {
			return "", entities.NewValidationError("status", "conflicts with isDelivered")
		}
	}
	return candidates[0], nil
}

func paidOrLater(s entities.Status) bool {
	return s == entities.StatusPaid || s == entities.StatusShipped || s == entities.StatusDelivered
}

// Capture plans pending -> paid for a completed capture. applied is false when the
// order has already been paid: re-applying a capture is a no-op.
func Capture(order entities.Order, now time.Time) (t Transition, applied bool, err error) {
	if order.IsPaid {
		return Transition{}, false, nil
	}
	if order.Status != entities.StatusPending {
		return Transition{}, false, &entities.InvalidTransitionError{From: order.Status, To: entities.StatusPaid}
	}
	return newTransition(order.Status, entities.StatusPaid, now), true, nil
}

// Apply returns a copy of order with t applied in memory.
func Apply(order entities.Order, t Transition) entities.Order {
	order.Status = t.To
	order.UpdatedAt = t.At
	if t.SetPaid {
		at := t.At
		order.IsPaid = true
		order.PaidAt = &at
	}
	if t.SetDelivered {
		at := t.At
		order.IsDelivered = true
		order.DeliveredAt = &at
	}
	return order
}

func newTransition(from, to entities.Status, now time.Time) Transition {
	return Transition{
		From:         from,
		To:           to,
		SetPaid:      to == entities.StatusPaid,
		SetDelivered: to == entities.StatusDelivered,
		At:           now,
	}
}
