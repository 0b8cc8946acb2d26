package entity

import "time"

// Supplier representa un proveedor que surte productos a la distribuidora.
type Supplier struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	AddressID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SupplierView fila de listado con la dirección resuelta por JOIN.
type SupplierView struct {
	Supplier
	Address *AddressView
}
