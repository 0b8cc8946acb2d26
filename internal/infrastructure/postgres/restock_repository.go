package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.RestockRepository = (*RestockRepo)(nil)

// RestockRepo implementación del puerto RestockRepository sobre PostgreSQL (usable con pool o tx).
type RestockRepo struct {
	q Querier
}

// NewRestockRepository construye el adaptador de persistencia para entradas de mercancía.
func NewRestockRepository(q Querier) *RestockRepo {
	return &RestockRepo{q: q}
}

// Create registra una entrada de mercancía.
func (r *RestockRepo) Create(restock *entity.Restock) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO restocks (id, product_id, quantity, purchase_price, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		restock.ID, restock.ProductID, restock.Quantity, restock.PurchasePrice, restock.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert restock: %w", err)
	}
	return nil
}

// ListByProduct lista las entradas de un producto, de la más reciente a la más antigua.
func (r *RestockRepo) ListByProduct(productID string) ([]*entity.Restock, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, product_id, quantity, purchase_price, created_at
		FROM restocks WHERE product_id = $1 ORDER BY created_at DESC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list restocks: %w", err)
	}
	defer rows.Close()

	var result []*entity.Restock
	for rows.Next() {
		var e entity.Restock
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Quantity, &e.PurchasePrice, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan restock row: %w", err)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}
