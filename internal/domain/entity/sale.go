package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una venta. Inmutable después de creada, salvo eliminación
// administrativa (que restaura el stock de sus ítems).
// Invariante: Total == Σ subtotales de sus ítems, siempre.
type Sale struct {
	ID         string
	CustomerID string
	Date       time.Time
	Total      decimal.Decimal
}

// SaleItem línea de una venta: fija cantidad y precio unitario al momento de
// vender. El conjunto de líneas de una venta es fijo desde la creación.
// LineNo es la posición de la línea dentro de la venta (1..N, orden de la
// solicitud); los IDs son UUID y no sirven para ordenar.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	LineNo    int
	Quantity  int64
	UnitPrice decimal.Decimal // precio observado por el motor, no el del caller
	Subtotal  decimal.Decimal // Quantity × UnitPrice
}

// SaleView fila de listado con el nombre del cliente resuelto por JOIN.
type SaleView struct {
	Sale
	CustomerName string
}

// SaleItemView línea con el nombre del producto resuelto por JOIN.
type SaleItemView struct {
	SaleItem
	ProductName string
}

// SaleHistoryRow fila de los reportes de historial (por cliente, producto o período).
type SaleHistoryRow struct {
	SaleID       string
	Date         time.Time
	Total        decimal.Decimal
	CustomerName string
	ProductName  string
	Quantity     int64
	UnitPrice    decimal.Decimal
	Subtotal     decimal.Decimal
}
