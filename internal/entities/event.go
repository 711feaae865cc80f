package entities

import "time"

// OrderEvent announces a committed status change.
type OrderEvent struct {
	OrderID string
	From    Status
	To      Status
	At      time.Time
}
