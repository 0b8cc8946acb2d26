package repository

import (
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus ítems.
// Create, CreateItem, Delete y DeleteItemsBySale se invocan dentro de la
// transacción del motor de ventas (repositorio atado a la tx vía TxRunner).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Sale, error)
	ItemsBySale(saleID string) ([]*entity.SaleItemView, error)
	List(limit, offset int) ([]*entity.SaleView, error)
	HistoryByCustomer(customerID string) ([]*entity.SaleHistoryRow, error)
	HistoryByProduct(productID string) ([]*entity.SaleHistoryRow, error)
	HistoryByPeriod(from, to time.Time) ([]*entity.SaleHistoryRow, error)
	DeleteItemsBySale(saleID string) error
	Delete(id string) error
}
