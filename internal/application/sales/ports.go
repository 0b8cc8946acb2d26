package sales

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de ventas:
// commit si fn retorna nil, rollback en cualquier otro caso. No hay política de
// reintentos: los conflictos se resuelven como esperas de lock en el storage.
type TxRunner interface {
	// Run transacción de venta (registro y eliminación con restauración de stock).
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error) error

	// RunRestock transacción de entrada de mercancía.
	RunRestock(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		restockRepo repository.RestockRepository,
	) error) error
}
