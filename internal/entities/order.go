package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transition is possible from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type ShippingAddress struct {
	FullName   string
	Street     string
	City       string
	PostalCode string
	Country    string
}

func (a ShippingAddress) Complete() bool {
	return a.FullName != "" && a.Street != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

const MaxItemQuantity = 10000

// MaxOrderTotal is the first amount that no longer fits the stored NUMERIC(12,2) total.
var MaxOrderTotal = decimal.New(1, 10)

// LineItem is a snapshot of a catalog product taken when the order is created.
type LineItem struct {
	ProductID string
	Name      string
	Image     string
	UnitPrice decimal.Decimal
	Quantity  int
	Variant   string
}

func (i LineItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type PaymentResult struct {
	TransactionID string
	Status        string
	PayerEmail    string
}

type Order struct {
	ID string
	// nil only for legacy guest orders
	OwnerID *string

	Items           []LineItem
	TotalAmount     decimal.Decimal
	ShippingAddress ShippingAddress

	Status      Status
	IsPaid      bool
	PaidAt      *time.Time
	IsDelivered bool
	DeliveredAt *time.Time

	PaymentResult *PaymentResult

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ItemsTotal sums unit price times quantity over the line items.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

type OrderOwner struct {
	Name  string
	Email string
}

// OrderDetails is an order together with its resolved owner, as returned to the back office.
type OrderDetails struct {
	Order Order
	Owner *OrderOwner
}

// CartItem is a line of an untrusted client cart. ClientPrice is accepted only to be discarded.
type CartItem struct {
	ProductID   string
	Quantity    int
	Variant     string
	ClientPrice *decimal.Decimal
}
