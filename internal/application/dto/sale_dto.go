package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest un (producto, cantidad) solicitado. El precio unitario lo
// deriva el motor al validar; no se acepta del caller.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// RegisterSaleRequest registro de venta multi-ítem.
type RegisterSaleRequest struct {
	CustomerID string            `json:"customer_id"`
	Items      []SaleItemRequest `json:"items"`
}

// RegisterSaleResponse resultado del registro: el ID de la venta creada.
type RegisterSaleResponse struct {
	SaleID string `json:"sale_id"`
}

// SaleItemResponse línea de venta con el precio fijado al momento de vender.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse detalle de una venta.
type SaleResponse struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customer_id"`
	CustomerName string             `json:"customer_name,omitempty"`
	Date         time.Time          `json:"date"`
	Total        decimal.Decimal    `json:"total"`
	Items        []SaleItemResponse `json:"items,omitempty"`
}

// RestockRequest entrada de mercancía.
type RestockRequest struct {
	ProductID     string          `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// RestockResponse entrada de mercancía registrada.
type RestockResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Quantity      int64           `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CreatedAt     time.Time       `json:"created_at"`
}

// SaleHistoryRowResponse fila de historial (por cliente, producto o período).
type SaleHistoryRowResponse struct {
	SaleID       string          `json:"sale_id"`
	Date         time.Time       `json:"date"`
	Total        decimal.Decimal `json:"total"`
	CustomerName string          `json:"customer_name,omitempty"`
	ProductName  string          `json:"product_name,omitempty"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}
