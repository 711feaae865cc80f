package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/storefront-checkout/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// catalogRepo reads product prices owned by the catalog service.
type catalogRepo struct {
	db *sqlx.DB
	qb sq.StatementBuilderType
}

func NewCatalogRepo(db *sqlx.DB) *catalogRepo {
	return &catalogRepo{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ProductsByIDs returns the products that exist; unknown ids are absent from the map.
func (r *catalogRepo) ProductsByIDs(ctx context.Context, ids []string) (map[string]entities.Product, error) {
	if len(ids) == 0 {
		return map[string]entities.Product{}, nil
	}

	query, args := r.qb.Select("id", "name", "image", "price").
		From("products").
		Where(sq.Eq{"id": ids}).
		MustSql()

	var products []Product
	if err := selectContext(ctx, r.db, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}

	result := make(map[string]entities.Product, len(products))
	for _, p := range products {
		result[p.ID] = ProductToEntity(p)
	}
	return result, nil
}
