package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/SergeyBogomolovv/storefront-checkout/internal/orderstate"
	"github.com/SergeyBogomolovv/storefront-checkout/pkg/trm"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type orderRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewOrderRepo(db *sqlx.DB) *orderRepo {
	return &orderRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *orderRepo) GetOrderByID(ctx context.Context, id string) (entities.Order, error) {
	query, args := r.qb.Select(orderColumns...).
		From("orders").
		Where(sq.Eq{"id": id}).
		MustSql()

	var order Order
	err := getContext(ctx, r.db, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	query, args = r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": id}).
		OrderBy("position").
		MustSql()

	var items []Item
	if err := selectContext(ctx, r.db, &items, query, args...); err != nil {
		return entities.Order{}, fmt.Errorf("failed to get items: %w", err)
	}

	return OrderToEntity(order, items), nil
}

func (r *orderRepo) SaveOrder(ctx context.Context, o entities.Order) error {
	addr := o.ShippingAddress
	query, args := r.qb.Insert("orders").
		Columns(
			"id", "owner_id", "total_amount",
			"ship_full_name", "ship_street", "ship_city", "ship_postal_code", "ship_country",
			"status", "is_paid", "is_delivered", "created_at", "updated_at",
		).
		Values(
			o.ID, nullStringPtr(o.OwnerID), o.TotalAmount,
			addr.FullName, addr.Street, addr.City, addr.PostalCode, addr.Country,
			string(o.Status), o.IsPaid, o.IsDelivered, o.CreatedAt, o.UpdatedAt,
		).
		MustSql()

	if _, err := execContext(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("failed to save order: %w", rejected(err))
	}
	return nil
}

func (r *orderRepo) SaveItems(ctx context.Context, orderID string, items []entities.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	q := r.qb.Insert("order_items").Columns(itemColumns...)
	for i, it := range items {
		q = q.Values(
			orderID,
			i,
			it.ProductID,
			it.Name,
			nullString(it.Image),
			it.UnitPrice,
			it.Quantity,
			nullString(it.Variant),
		)
	}

	query, args := q.MustSql()
	if _, err := execContext(ctx, r.db, query, args...); err != nil {
		return fmt.Errorf("failed to save items: %w", rejected(err))
	}
	return nil
}

// ApplyTransition writes t only if the stored status still equals t.From.
// ErrStatusConflict is returned when another writer got there first or the order is gone.
func (r *orderRepo) ApplyTransition(ctx context.Context, id string, t orderstate.Transition, payment *entities.PaymentResult) error {
	q := r.qb.Update("orders").
		Set("status", string(t.To)).
		Set("updated_at", t.At).
		Where(sq.Eq{"id": id, "status": string(t.From)})

	if t.SetPaid {
		q = q.Set("is_paid", true).Set("paid_at", t.At)
	}
	if t.SetDelivered {
		q = q.Set("is_delivered", true).Set("delivered_at", t.At)
	}
	if payment != nil {
		q = q.Set("payment_transaction", nullString(payment.TransactionID)).
			Set("payment_status", nullString(payment.Status)).
			Set("payer_email", nullString(payment.PayerEmail))
	}

	query, args := q.MustSql()
	res, err := execContext(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return entities.ErrStatusConflict
	}
	return nil
}

// GetOrderOwner resolves the name and email of the user who placed the order.
func (r *orderRepo) GetOrderOwner(ctx context.Context, orderID string) (entities.OrderOwner, error) {
	query, args := r.qb.Select("u.name", "u.email").
		From("orders o").
		Join("users u ON u.id = o.owner_id").
		Where(sq.Eq{"o.id": orderID}).
		MustSql()

	var user User
	err := getContext(ctx, r.db, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.OrderOwner{}, entities.ErrOwnerNotFound
	}
	if err != nil {
		return entities.OrderOwner{}, fmt.Errorf("failed to get order owner: %w", err)
	}
	return entities.OrderOwner{Name: user.Name, Email: user.Email}, nil
}

// rejected marks data exceptions (class 22) and integrity violations (class 23)
// with entities.ErrDataRejected.
func rejected(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code.Class() {
	case "22", "23":
		return fmt.Errorf("%w: %w", entities.ErrDataRejected, err)
	}
	return err
}

func execContext(ctx context.Context, db *sqlx.DB, query string, args ...any) (sql.Result, error) {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.ExecContext(ctx, query, args...)
	}
	return db.ExecContext(ctx, query, args...)
}

func getContext(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.GetContext(ctx, dest, query, args...)
	}
	return db.GetContext(ctx, dest, query, args...)
}

func selectContext(ctx context.Context, db *sqlx.DB, dest any, query string, args ...any) error {
	tx := trm.ExtractTx(ctx)
	if tx != nil {
		return tx.SelectContext(ctx, dest, query, args...)
	}
	return db.SelectContext(ctx, dest, query, args...)
}
