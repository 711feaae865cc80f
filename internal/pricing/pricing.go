package pricing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"
	"github.com/shopspring/decimal"
)

type Catalog interface {
	// ProductsByIDs returns the products that exist; unknown ids are absent from the map.
	ProductsByIDs(ctx context.Context, ids []string) (map[string]entities.Product, error)
}

type Reconciler struct {
	logger  *slog.Logger
	catalog Catalog
}

func NewReconciler(logger *slog.Logger, catalog Catalog) *Reconciler {
	return &Reconciler{
		logger:  logger.With(slog.String("service", "pricing")),
		catalog: catalog,
	}
}

// Reconcile turns an untrusted cart into line item snapshots priced from the catalog.
// If any product cannot be resolved nothing is returned.
func (r *Reconciler) Reconcile(ctx context.Context, cart []entities.CartItem) ([]entities.LineItem, decimal.Decimal, error) {
	if err := validateCart(cart); err != nil {
		return nil, decimal.Zero, err
	}

	ids := make([]string, 0, len(cart))
	seen := make(map[string]struct{}, len(cart))
	for _, it := range cart {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}

	products, err := r.catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("failed to load products: %w", err)
	}

	items := make([]entities.LineItem, 0, len(cart))
	total := decimal.Zero
	for _, it := range cart {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, decimal.Zero, &entities.LineItemNotFoundError{ProductID: it.ProductID}
		}

		if it.ClientPrice != nil && !it.ClientPrice.Equal(p.Price) {
			r.logger.DebugContext(ctx, "client price ignored",
				slog.String("product_id", p.ID),
				slog.String("client_price", it.ClientPrice.String()),
				slog.String("catalog_price", p.Price.String()),
			)
		}

		item := entities.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			UnitPrice: p.Price,
			Quantity:  it.Quantity,
			Variant:   it.Variant,
		}
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}

	if total.GreaterThanOrEqual(entities.MaxOrderTotal) {
		return nil, decimal.Zero, entities.NewValidationError("items", "order total is too large")
	}

	return items, total, nil
}

func validateCart(cart []entities.CartItem) error {
	if len(cart) == 0 {
		return entities.NewValidationError("items", "cart is empty")
	}
	for i, it := range cart {
		if strings.TrimSpace(it.ProductID) == "" {
			return entities.NewValidationError(fmt.Sprintf("items[%d].productId", i), "required")
		}
		if it.Quantity < 1 {
			return entities.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
		if it.Quantity > entities.MaxItemQuantity {
			return entities.NewValidationError(fmt.Sprintf("items[%d].quantity", i),
				fmt.Sprintf("must be at most %d", entities.MaxItemQuantity))
		}
	}
	return nil
}
