package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto de la distribuidora.
// Quantity solo lo mutan el motor de ventas (decremento), las entradas de
// mercancía (incremento) y la restauración al eliminar una venta; siempre >= 0.
type Product struct {
	ID         string
	Name       string
	Category   string
	Price      decimal.Decimal // precio de venta unitario
	Quantity   int64
	SupplierID *string
	MinStock   int64 // umbral para el reporte de stock bajo
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BelowMinStock indica si el producto está por debajo de su umbral mínimo.
func (p *Product) BelowMinStock() bool {
	return p.Quantity < p.MinStock
}

// ProductView fila de listado con el nombre del proveedor resuelto por JOIN.
type ProductView struct {
	Product
	SupplierName string
}
