package handler

import (
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/orderstate"
	"github.com/shopspring/decimal"
)

// CartItem is a line of the client cart. Price is accepted but ignored: the server
// always prices from the catalog.
type CartItem struct {
	ProductID string           `json:"productId" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gte=1,lte=10000"`
	Variant   string           `json:"variant,omitempty"`
	Price     *decimal.Decimal `json:"price,omitempty" swaggertype:"string"`
}

type ShippingAddress struct {
	FullName   string `json:"fullName" validate:"required"`
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type CreatePaymentRequest struct {
	Items           []CartItem      `json:"items" validate:"required,min=1,dive"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

type PaymentIntent struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Links  []Link `json:"links"`
}

type CapturePaymentRequest struct {
	IntentID string `json:"intentId" validate:"required"`
}

type CaptureResult struct {
	ID              string `json:"id"`
	Status          string `json:"status"`
	TransactionID   string `json:"transactionId,omitempty"`
	PayerEmail      string `json:"payerEmail,omitempty"`
	AlreadyCaptured bool   `json:"alreadyCaptured"`
}

type UpdateOrderRequest struct {
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
	IsPaid      *bool   `json:"isPaid,omitempty"`
	IsDelivered *bool   `json:"isDelivered,omitempty"`
}

type LineItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"variant,omitempty"`
}

type PaymentResult struct {
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	PayerEmail    string `json:"payerEmail,omitempty"`
}

type OrderOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID              string          `json:"id"`
	OwnerID         *string         `json:"ownerId,omitempty"`
	Owner           *OrderOwner     `json:"owner,omitempty"`
	Items           []LineItem      `json:"items"`
	TotalAmount     string          `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Status          string          `json:"status"`
	IsPaid          bool            `json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	PaymentResult   *PaymentResult  `json:"paymentResult,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CaptureNotification is a processor webhook relayed onto Kafka by the edge service.
type CaptureNotification struct {
	IntentID      string `json:"intentId" validate:"required"`
	CorrelationID string `json:"correlationId" validate:"required"`
	Status        string `json:"status" validate:"required"`
	TransactionID string `json:"transactionId"`
	PayerEmail    string `json:"payerEmail"`
}

func CartJSONToEntity(items []CartItem) []entities.CartItem {
	cart := make([]entities.CartItem, 0, len(items))
	for _, it := range items {
		cart = append(cart, entities.CartItem{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			Variant:     it.Variant,
			ClientPrice: it.Price,
		})
	}
	return cart
}

func AddressJSONToEntity(a ShippingAddress) entities.ShippingAddress {
	return entities.ShippingAddress{
		FullName:   a.FullName,
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func AddressEntityToJSON(a entities.ShippingAddress) ShippingAddress {
	return ShippingAddress{
		FullName:   a.FullName,
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func IntentEntityToJSON(i entities.PaymentIntent) PaymentIntent {
	links := make([]Link, 0, len(i.Links))
	for _, l := range i.Links {
		links = append(links, Link{Href: l.Href, Rel: l.Rel, Method: l.Method})
	}
	return PaymentIntent{ID: i.ID, Status: i.Status, Links: links}
}

func CaptureEntityToJSON(r entities.CaptureResult) CaptureResult {
	return CaptureResult{
		ID:              r.IntentID,
		Status:          r.Status,
		TransactionID:   r.TransactionID,
		PayerEmail:      r.PayerEmail,
		AlreadyCaptured: r.AlreadyCaptured,
	}
}

func ChangeJSONToEntity(req UpdateOrderRequest) orderstate.Change {
	change := orderstate.Change{
		IsPaid:      req.IsPaid,
		IsDelivered: req.IsDelivered,
	}
	if req.Status != nil {
		status := entities.Status(*req.Status)
		change.Status = &status
	}
	return change
}

func NotificationJSONToEntity(n CaptureNotification) entities.CaptureResult {
	return entities.CaptureResult{
		IntentID:      n.IntentID,
		Status:        n.Status,
		CorrelationID: n.CorrelationID,
		TransactionID: n.TransactionID,
		PayerEmail:    n.PayerEmail,
	}
}

func OrderEntityToJSON(o entities.Order) Order {
	items := make([]LineItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, LineItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Quantity:  it.Quantity,
			Variant:   it.Variant,
		})
	}

	order := Order{
		ID:              o.ID,
		OwnerID:         o.OwnerID,
		Items:           items,
		TotalAmount:     o.TotalAmount.StringFixed(2),
		ShippingAddress: AddressEntityToJSON(o.ShippingAddress),
		Status:          string(o.Status),
		IsPaid:          o.IsPaid,
		PaidAt:          o.PaidAt,
		IsDelivered:     o.IsDelivered,
		DeliveredAt:     o.DeliveredAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	if o.PaymentResult != nil {
		order.PaymentResult = &PaymentResult{
			TransactionID: o.PaymentResult.TransactionID,
			Status:        o.PaymentResult.Status,
			PayerEmail:    o.PaymentResult.PayerEmail,
		}
	}
	return order
}

func DetailsEntityToJSON(d entities.OrderDetails) Order {
	order := OrderEntityToJSON(d.Order)
	if d.Owner != nil {
		order.Owner = &OrderOwner{Name: d.Owner.Name, Email: d.Owner.Email}
	}
	return order
}
