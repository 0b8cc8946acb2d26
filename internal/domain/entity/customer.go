package entity

import "time"

// Customer representa un cliente que compra productos.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	AddressID *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerView fila de listado con la dirección resuelta por JOIN.
type CustomerView struct {
	Customer
	Address *AddressView
}
