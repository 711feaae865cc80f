package entities

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOwnerNotFound = errors.New("order owner not found")
	ErrInvalidOrder  = errors.New("invalid order data")

	// ErrDataRejected wraps storage errors caused by the data itself, such as a
	// numeric overflow or a violated constraint. Repeating the write cannot help.
	ErrDataRejected = errors.New("order data rejected by storage")

	// ErrStatusConflict means a conditional write found a different status than expected.
	ErrStatusConflict = errors.New("order status changed concurrently")

	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("admin access required")

	ErrCredentialsMissing = errors.New("payment processor credentials are not configured")
	// ErrUnlinkedCapture is a completed capture that names no order. Funds have moved,
	// so it needs an operator, not a retry by the customer.
	ErrUnlinkedCapture = errors.New("completed capture is not linked to an order")
	ErrTokenAcquisition   = errors.New("failed to acquire payment processor token")
)

// ValidationError is returned for malformed input before any persistence or network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

type LineItemNotFoundError struct {
	ProductID string
}

func (e *LineItemNotFoundError) Error() string {
	return fmt.Sprintf("line item not found: product %q", e.ProductID)
}

// GatewayError is any failed call to the payment processor.
type GatewayError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *GatewayError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("payment gateway %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("payment gateway %s: status %d: %s", e.Op, e.Status, e.Body)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure happened before the processor accepted the request:
// a transport error or a 5xx response.
func (e *GatewayError) Retryable() bool {
	return e.Status == 0 || e.Status >= 500
}

type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}
