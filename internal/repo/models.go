package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID          string          `db:"id"`
	OwnerID     sql.NullString  `db:"owner_id"`
	TotalAmount decimal.Decimal `db:"total_amount"`

	ShipFullName   string `db:"ship_full_name"`
	ShipStreet     string `db:"ship_street"`
	ShipCity       string `db:"ship_city"`
	ShipPostalCode string `db:"ship_postal_code"`
	ShipCountry    string `db:"ship_country"`

	Status      string       `db:"status"`
	IsPaid      bool         `db:"is_paid"`
	PaidAt      sql.NullTime `db:"paid_at"`
	IsDelivered bool         `db:"is_delivered"`
	DeliveredAt sql.NullTime `db:"delivered_at"`

	PaymentTransaction sql.NullString `db:"payment_transaction"`
	PaymentStatus      sql.NullString `db:"payment_status"`
	PayerEmail         sql.NullString `db:"payer_email"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Item struct {
	OrderID   string          `db:"order_id"`
	Position  int             `db:"position"`
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	Image     sql.NullString  `db:"image"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Quantity  int             `db:"quantity"`
	Variant   sql.NullString  `db:"variant"`
}

type Product struct {
	ID    string          `db:"id"`
	Name  string          `db:"name"`
	Image sql.NullString  `db:"image"`
	Price decimal.Decimal `db:"price"`
}

type User struct {
	Name  string `db:"name"`
	Email string `db:"email"`
}

var orderColumns = []string{
	"id", "owner_id", "total_amount",
	"ship_full_name", "ship_street", "ship_city", "ship_postal_code", "ship_country",
	"status", "is_paid", "paid_at", "is_delivered", "delivered_at",
	"payment_transaction", "payment_status", "payer_email",
	"created_at", "updated_at",
}

var itemColumns = []string{
	"order_id", "position", "product_id", "name", "image", "unit_price", "quantity", "variant",
}

func ItemToEntity(i Item) entities.LineItem {
	return entities.LineItem{
		ProductID: i.ProductID,
		Name:      i.Name,
		Image:     nullStringToString(i.Image),
		UnitPrice: i.UnitPrice,
		Quantity:  i.Quantity,
		Variant:   nullStringToString(i.Variant),
	}
}

func ProductToEntity(p Product) entities.Product {
	return entities.Product{
		ID:    p.ID,
		Name:  p.Name,
		Image: nullStringToString(p.Image),
		Price: p.Price,
	}
}

func OrderToEntity(o Order, items []Item) entities.Order {
	order := entities.Order{
		ID:          o.ID,
		TotalAmount: o.TotalAmount,
		ShippingAddress: entities.ShippingAddress{
			FullName:   o.ShipFullName,
			Street:     o.ShipStreet,
			City:       o.ShipCity,
			PostalCode: o.ShipPostalCode,
			Country:    o.ShipCountry,
		},
		Status:      entities.Status(o.Status),
		IsPaid:      o.IsPaid,
		PaidAt:      nullTimeToPtr(o.PaidAt),
		IsDelivered: o.IsDelivered,
		DeliveredAt: nullTimeToPtr(o.DeliveredAt),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}

	if o.OwnerID.Valid {
		owner := o.OwnerID.String
		order.OwnerID = &owner
	}

	if o.PaymentTransaction.Valid {
		order.PaymentResult = &entities.PaymentResult{
			TransactionID: o.PaymentTransaction.String,
			Status:        nullStringToString(o.PaymentStatus),
			PayerEmail:    nullStringToString(o.PayerEmail),
		}
	}

	order.Items = make([]entities.LineItem, 0, len(items))
	for _, it := range items {
		order.Items = append(order.Items, ItemToEntity(it))
	}

	return order
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullTimeToPtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
