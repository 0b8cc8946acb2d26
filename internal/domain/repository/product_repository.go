package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// ProductPatch actualización parcial de un producto: solo se aplican los campos
// no nulos. El adaptador de persistencia la interpreta de forma uniforme, sin
// armar SQL condicional en cada caso de uso.
type ProductPatch struct {
	Name       *string
	Category   *string
	Price      *decimal.Decimal
	SupplierID *string
	MinStock   *int64
}

// Empty indica que el patch no modifica ningún campo.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil &&
		p.SupplierID == nil && p.MinStock == nil
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y AddQuantity/DecrementQuantity solo tienen sentido dentro de una
// transacción (repositorio atado a la tx vía TxRunner).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByNameAndSupplier(name string, supplierID *string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE) y
	// devuelve nil si no existe. Protección read-modify-write contra ventas
	// concurrentes sobre el mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Patch(id string, patch ProductPatch) error
	// AddQuantity incrementa el stock (entradas y restauración por eliminación
	// de venta). DecrementQuantity lo reduce (motor de ventas).
	AddQuantity(id string, qty int64) error
	DecrementQuantity(id string, qty int64) error
	List(limit, offset int) ([]*entity.ProductView, error)
	SearchByName(normalized string, limit int) ([]*entity.ProductView, error)
	ListBelowMinStock() ([]*entity.ProductView, error)
	Delete(id string) error
}
