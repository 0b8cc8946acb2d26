package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto en el catálogo.
type CreateProductRequest struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
	SupplierID *string         `json:"supplier_id"`
	MinStock   int64           `json:"min_stock"`
}

// UpdateProductRequest actualización completa (el overload canónico: todos los
// campos del producto).
type UpdateProductRequest struct {
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Price      decimal.Decimal `json:"price"`
	SupplierID *string         `json:"supplier_id"`
	MinStock   int64           `json:"min_stock"`
}

// PatchProductRequest actualización parcial: solo los campos presentes.
type PatchProductRequest struct {
	Name       *string          `json:"name"`
	Category   *string          `json:"category"`
	Price      *decimal.Decimal `json:"price"`
	SupplierID *string          `json:"supplier_id"`
	MinStock   *int64           `json:"min_stock"`
}

// ProductResponse producto para listados y detalle.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	SupplierName string          `json:"supplier_name,omitempty"`
	MinStock     int64           `json:"min_stock"`
	BelowMin     bool            `json:"below_min_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
