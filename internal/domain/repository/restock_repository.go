package repository

import "github.com/jhoicas/distribuidora-api/internal/domain/entity"

// RestockRepository define el puerto de persistencia para entradas de mercancía.
type RestockRepository interface {
	Create(restock *entity.Restock) error
	ListByProduct(productID string) ([]*entity.Restock, error)
}
